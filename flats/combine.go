// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"cmp"

	"github.com/brendancol/richdem/structures"
)

// combineGradients merges the two completed increment grids into the final
// mask. Re-walking the equal-elevation region from the low edges (this time
// not gated on the pointer value, so the boundary cells abutting non-flat
// terrain are also visited), every cell reached by the towards gradient is
// assigned
//
//	mask = 2*(towards-1)            gradient toward the outlets
//	     + flatHeight[label]-away+1 when the away gradient reached it too
//
// The doubling interleaves the two integer gradients without collision, so
// mask values strictly decrease along every path to the nearest low edge
// while still rising toward higher terrain. Cells the towards gradient
// never reached keep the mask's nodata value.
//
// The towards grid is consumed by the walk: every visited cell is set to -1,
// which is also the visited marker that keeps the walk finite. Requires the
// mask initialized to MaskNodata. flatHeight must come from the away pass.
func combineGradients[T cmp.Ordered](elevations *structures.RectangularArray[T],
	towards, away *structures.RectangularArray[int],
	mask *structures.RectangularArray[int],
	lowEdges []structures.GridCell,
	flatHeight []int,
	labels *structures.RectangularArray[int]) {

	edges := structures.NewCellQueue()
	for _, c := range lowEdges {
		edges.Push(c)
	}

	for edges.Len() > 0 {
		cell, _ := edges.Pop()

		if towards.Value(cell.Row, cell.Column) == -1 {
			continue // already visited and consumed
		}

		z := elevations.Value(cell.Row, cell.Column)
		for n := 0; n < 8; n++ {
			rowN := cell.Row + dY[n]
			colN := cell.Column + dX[n]
			if towards.InBounds(rowN, colN) && elevations.Value(rowN, colN) == z {
				edges.Push(structures.GridCell{Row: rowN, Column: colN})
			}
		}

		if t := towards.Value(cell.Row, cell.Column); t > 0 {
			m := 2 * (t - 1)
			if a := away.Value(cell.Row, cell.Column); a > 0 {
				m += flatHeight[labels.Value(cell.Row, cell.Column)] - a + 1
			}
			mask.SetValue(cell.Row, cell.Column, m)
		}

		towards.SetValue(cell.Row, cell.Column, -1)
	}
}
