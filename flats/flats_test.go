// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendancol/richdem/structures"
)

const testNodata = -32768.0

func elevationGrid(vals [][]float64) *structures.RectangularArray[float64] {
	rows := len(vals)
	columns := len(vals[0])
	g := structures.NewRectangularArray[float64](rows, columns, testNodata)
	for row := 0; row < rows; row++ {
		g.SetRowData(row, vals[row])
	}
	return g
}

func pointerGrid(vals [][]int8) *structures.RectangularArray[int8] {
	rows := len(vals)
	columns := len(vals[0])
	g := structures.NewRectangularArray[int8](rows, columns, PointerNodata)
	for row := 0; row < rows; row++ {
		g.SetRowData(row, vals[row])
	}
	return g
}

func TestFindFlatEdgesSingleRow(t *testing.T) {
	// cell 0 drains; cells 1 and 2 are flat at the same elevation
	elev := elevationGrid([][]float64{{5, 5, 5}})
	dirs := pointerGrid([][]int8{{2, NoFlow, NoFlow}})

	lowEdges, highEdges := findFlatEdges(elev, dirs)
	assert.Equal(t, []structures.GridCell{{Row: 0, Column: 1}}, lowEdges)
	assert.Empty(t, highEdges)
}

func TestFindFlatEdgesLowAndHigh(t *testing.T) {
	// flat run with an outlet on the left and higher terrain on the right
	elev := elevationGrid([][]float64{{5, 5, 5, 5, 9}})
	dirs := pointerGrid([][]int8{{4, NoFlow, NoFlow, NoFlow, 1}})

	lowEdges, highEdges := findFlatEdges(elev, dirs)
	assert.Equal(t, []structures.GridCell{{Row: 0, Column: 1}}, lowEdges)
	assert.Equal(t, []structures.GridCell{{Row: 0, Column: 3}}, highEdges)
}

func TestFindFlatEdgesCellCanBeBoth(t *testing.T) {
	// the single flat cell drains left and abuts higher terrain right
	elev := elevationGrid([][]float64{{5, 5, 9}})
	dirs := pointerGrid([][]int8{{4, NoFlow, 1}})

	lowEdges, highEdges := findFlatEdges(elev, dirs)
	assert.Equal(t, []structures.GridCell{{Row: 0, Column: 1}}, lowEdges)
	assert.Equal(t, []structures.GridCell{{Row: 0, Column: 1}}, highEdges)
}

func TestFindFlatEdgesSkipsNodata(t *testing.T) {
	elev := elevationGrid([][]float64{{testNodata, 5, 5}})
	dirs := pointerGrid([][]int8{{PointerNodata, NoFlow, NoFlow}})

	lowEdges, highEdges := findFlatEdges(elev, dirs)
	assert.Empty(t, lowEdges)
	assert.Empty(t, highEdges)
}

func TestLabelFlatStopsAtPointerAndElevation(t *testing.T) {
	// cell (0,0) is at the flat's elevation but drains, so it must stay
	// unlabelled; the elev-9 column bounds the flood fill
	elev := elevationGrid([][]float64{
		{5, 5, 9, 5},
		{5, 5, 9, 5},
	})
	dirs := pointerGrid([][]int8{
		{4, NoFlow, 1, NoFlow},
		{NoFlow, NoFlow, 1, NoFlow},
	})
	labels := structures.NewRectangularArray[int](2, 4, -1)
	labels.InitializeWithConstant(-1)

	labelFlat(structures.GridCell{Row: 0, Column: 1}, 0, labels, elev, dirs)

	assert.Equal(t, -1, labels.Value(0, 0))
	assert.Equal(t, 0, labels.Value(0, 1))
	assert.Equal(t, 0, labels.Value(1, 0))
	assert.Equal(t, 0, labels.Value(1, 1))
	// the equal-elevation cells beyond the ridge are a separate flat
	assert.Equal(t, -1, labels.Value(0, 3))
	assert.Equal(t, -1, labels.Value(1, 3))
}

func TestLabelFlatDistinctRegions(t *testing.T) {
	// two flats at the same elevation separated by higher terrain keep
	// distinct labels
	elev := elevationGrid([][]float64{
		{5, 5, 9, 9, 9},
		{9, 9, 9, 5, 5},
	})
	dirs := pointerGrid([][]int8{
		{4, NoFlow, 1, 1, 1},
		{1, 1, 1, NoFlow, 2},
	})
	labels := structures.NewRectangularArray[int](2, 5, -1)
	labels.InitializeWithConstant(-1)

	labelFlat(structures.GridCell{Row: 0, Column: 1}, 0, labels, elev, dirs)
	labelFlat(structures.GridCell{Row: 1, Column: 3}, 1, labels, elev, dirs)

	assert.Equal(t, 0, labels.Value(0, 1))
	assert.Equal(t, 1, labels.Value(1, 3))
}

func TestBuildGradientLayers(t *testing.T) {
	elev := elevationGrid([][]float64{{5, 5, 5, 5, 9}})
	dirs := pointerGrid([][]int8{{4, NoFlow, NoFlow, NoFlow, 1}})
	labels := structures.NewRectangularArray[int](1, 5, -1)
	labels.InitializeWithConstant(-1)
	labelFlat(structures.GridCell{Row: 0, Column: 1}, 0, labels, elev, dirs)

	increments := structures.NewRectangularArray[int](1, 5, 0)
	flatHeight := make([]int, 1)
	buildGradient(elev, dirs, increments, []structures.GridCell{{Row: 0, Column: 1}}, flatHeight, labels)

	// seeds get 1, each BFS layer outward adds exactly 1
	assert.Equal(t, 0, increments.Value(0, 0)) // drains, unreachable
	assert.Equal(t, 1, increments.Value(0, 1))
	assert.Equal(t, 2, increments.Value(0, 2))
	assert.Equal(t, 3, increments.Value(0, 3))
	assert.Equal(t, 0, increments.Value(0, 4)) // higher terrain
	assert.Equal(t, 3, flatHeight[0])
}

func TestBuildGradientNoSeeds(t *testing.T) {
	elev := elevationGrid([][]float64{{5, 5}})
	dirs := pointerGrid([][]int8{{NoFlow, NoFlow}})
	labels := structures.NewRectangularArray[int](1, 2, -1)
	increments := structures.NewRectangularArray[int](1, 2, 0)

	buildGradient(elev, dirs, increments, nil, nil, labels)

	assert.Equal(t, 0, increments.Value(0, 0))
	assert.Equal(t, 0, increments.Value(0, 1))
}

func TestCombineGradientsFormula(t *testing.T) {
	elev := elevationGrid([][]float64{{5, 5, 5, 5, 9}})
	dirs := pointerGrid([][]int8{{4, NoFlow, NoFlow, NoFlow, 1}})
	labels := structures.NewRectangularArray[int](1, 5, -1)
	labels.InitializeWithConstant(-1)
	labelFlat(structures.GridCell{Row: 0, Column: 1}, 0, labels, elev, dirs)

	lowEdges := []structures.GridCell{{Row: 0, Column: 1}}
	highEdges := []structures.GridCell{{Row: 0, Column: 3}}

	towards := structures.NewRectangularArray[int](1, 5, 0)
	away := structures.NewRectangularArray[int](1, 5, 0)
	towardsHeight := make([]int, 1)
	awayHeight := make([]int, 1)
	buildGradient(elev, dirs, towards, lowEdges, towardsHeight, labels)
	buildGradient(elev, dirs, away, highEdges, awayHeight, labels)
	require.Equal(t, 3, awayHeight[0])

	mask := structures.NewRectangularArray[int](1, 5, MaskNodata)
	mask.InitializeWithConstant(MaskNodata)
	combineGradients(elev, towards, away, mask, lowEdges, awayHeight, labels)

	// mask = 2*(towards-1) + flatHeight-away+1
	assert.Equal(t, MaskNodata, mask.Value(0, 0))
	assert.Equal(t, 1, mask.Value(0, 1)) // 2*0 + 3-3+1
	assert.Equal(t, 4, mask.Value(0, 2)) // 2*1 + 3-2+1
	assert.Equal(t, 7, mask.Value(0, 3)) // 2*2 + 3-1+1
	assert.Equal(t, MaskNodata, mask.Value(0, 4))

	// the towards grid is consumed by the walk
	assert.Equal(t, -1, towards.Value(0, 1))
	assert.Equal(t, -1, towards.Value(0, 2))
	assert.Equal(t, -1, towards.Value(0, 3))
}
