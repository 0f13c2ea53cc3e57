// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package structures

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangularArrayBounds(t *testing.T) {
	ra := NewRectangularArray[float64](3, 4, -9999.0)
	require.Equal(t, 3, ra.GetRows())
	require.Equal(t, 4, ra.GetColumns())

	ra.SetValue(1, 2, 42.5)
	assert.Equal(t, 42.5, ra.Value(1, 2))

	// out-of-bounds reads return the nodata value
	assert.Equal(t, -9999.0, ra.Value(-1, 0))
	assert.Equal(t, -9999.0, ra.Value(0, 4))
	assert.Equal(t, -9999.0, ra.Value(3, 0))

	// out-of-bounds writes are ignored
	ra.SetValue(-1, -1, 7.0)
	ra.SetValue(3, 4, 7.0)
	assert.Equal(t, 42.5, ra.Value(1, 2))

	assert.True(t, ra.InBounds(0, 0))
	assert.True(t, ra.InBounds(2, 3))
	assert.False(t, ra.InBounds(3, 3))
	assert.False(t, ra.InBounds(0, -1))
}

func TestRectangularArrayRowData(t *testing.T) {
	ra := NewRectangularArray[int](2, 3, -1)
	ra.SetRowData(1, []int{4, 5, 6})
	assert.Equal(t, []int{4, 5, 6}, ra.GetRowData(1))
	assert.Equal(t, []int{0, 0, 0}, ra.GetRowData(0))

	ra.InitializeWithConstant(-1)
	assert.Equal(t, []int{-1, -1, -1}, ra.GetRowData(1))

	err := ra.InitializeWithData([]int{1, 2, 3})
	assert.Equal(t, ArrayLengthError, err)
	err = ra.InitializeWithData([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 4, ra.Value(1, 0))
}

func TestCreate2dArray(t *testing.T) {
	a := Create2dArray[bool](3, 2)
	require.Len(t, a, 3)
	for _, row := range a {
		require.Len(t, row, 2)
	}
	a[2][1] = true
	assert.True(t, a[2][1])
	assert.False(t, a[0][0])
}

func TestCellQueueFIFO(t *testing.T) {
	q := NewCellQueue()
	require.Equal(t, 0, q.Len())

	q.Push(GridCell{Row: 1, Column: 2})
	q.Push(GridCell{Row: 3, Column: 4})
	require.Equal(t, 2, q.Len())

	c, marker := q.Pop()
	assert.False(t, marker)
	assert.Equal(t, GridCell{Row: 1, Column: 2}, c)

	c, marker = q.Pop()
	assert.False(t, marker)
	assert.Equal(t, GridCell{Row: 3, Column: 4}, c)
	assert.Equal(t, 0, q.Len())
}

func TestCellQueueLayerMarkers(t *testing.T) {
	// a marker pushed between two layers must come out between them
	q := NewCellQueue()
	q.Push(GridCell{Row: 0, Column: 0})
	q.PushLayerMarker()
	q.Push(GridCell{Row: 0, Column: 1})

	_, marker := q.Pop()
	assert.False(t, marker)
	_, marker = q.Pop()
	assert.True(t, marker)
	_, marker = q.Pop()
	assert.False(t, marker)
}

func TestPQueueOrdering(t *testing.T) {
	q := NewPQueue[string](MINPQ)
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("d", 4)
	q.Push("b", 2)

	require.Equal(t, 4, q.Len())
	assert.Equal(t, "a", q.Head())
	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())
	assert.Equal(t, "c", q.Pop())
	assert.Equal(t, "d", q.Pop())
	assert.Equal(t, 0, q.Len())
}

func TestPQueueRandomMax(t *testing.T) {
	q := NewPQueue[int64](MAXPQ)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := rng.Int63()
		q.Push(p, p)
	}
	last := q.Pop()
	for q.Len() > 0 {
		v := q.Pop()
		require.LessOrEqual(t, v, last)
		last = v
	}
}
