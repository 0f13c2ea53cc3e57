// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"cmp"

	"github.com/brendancol/richdem/structures"
)

// buildGradient expands breadth-first from the seed cells, writing each
// reached flat cell's layer distance into increments: seeds are at layer 1,
// their unvisited equal-elevation flat neighbours at layer 2 and so on. For
// every flat it also records in flatHeight the greatest layer any of the
// flat's cells reached, used later as the normalization constant when the
// two gradients are combined.
//
// A single layer-marker entry circulates through the queue; each time it is
// dequeued the layer counter advances and the marker is re-enqueued, so the
// run ends once only the marker remains. Expansion never leaves the flat:
// only in-grid neighbours at the seed elevation with the NoFlow pointer are
// enqueued. Requires increments initialized to 0.
func buildGradient[T cmp.Ordered](elevations *structures.RectangularArray[T],
	flowdirs *structures.RectangularArray[int8],
	increments *structures.RectangularArray[int],
	seeds []structures.GridCell,
	flatHeight []int,
	labels *structures.RectangularArray[int]) {

	edges := structures.NewCellQueue()
	for _, c := range seeds {
		edges.Push(c)
	}
	edges.PushLayerMarker()

	loops := 1
	for edges.Len() != 1 { // only the layer marker is left in the end
		cell, advanceLayer := edges.Pop()

		if advanceLayer {
			loops++
			edges.PushLayerMarker()
			continue
		}

		if increments.Value(cell.Row, cell.Column) > 0 {
			continue // already incremented
		}

		increments.SetValue(cell.Row, cell.Column, loops)
		if lbl := labels.Value(cell.Row, cell.Column); loops > flatHeight[lbl] {
			flatHeight[lbl] = loops
		}

		z := elevations.Value(cell.Row, cell.Column)
		for n := 0; n < 8; n++ {
			rowN := cell.Row + dY[n]
			colN := cell.Column + dX[n]
			if increments.InBounds(rowN, colN) &&
				increments.Value(rowN, colN) == 0 &&
				elevations.Value(rowN, colN) == z &&
				flowdirs.Value(rowN, colN) == NoFlow {
				edges.Push(structures.GridCell{Row: rowN, Column: colN})
			}
		}
	}
}
