// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"cmp"

	"github.com/brendancol/richdem/structures"
)

// labelFlat performs a flood fill from the seed, writing label into every
// 8-connected NoFlow cell at the seed's elevation that is still unlabelled.
// Expansion stops at cells of differing elevation, at cells with a defined
// pointer and at cells already labelled, so two equal-elevation flats that
// only touch through higher or lower terrain keep distinct labels.
func labelFlat[T cmp.Ordered](seed structures.GridCell, label int,
	labels *structures.RectangularArray[int],
	elevations *structures.RectangularArray[T],
	flowdirs *structures.RectangularArray[int8]) {

	targetElevation := elevations.Value(seed.Row, seed.Column)
	toFill := structures.NewCellQueue()
	toFill.Push(seed)

	for toFill.Len() > 0 {
		cell, _ := toFill.Pop()
		if labels.Value(cell.Row, cell.Column) > -1 {
			continue
		}
		if elevations.Value(cell.Row, cell.Column) != targetElevation {
			continue
		}
		if flowdirs.Value(cell.Row, cell.Column) != NoFlow {
			continue
		}
		labels.SetValue(cell.Row, cell.Column, label)
		for n := 0; n < 8; n++ {
			rowN := cell.Row + dY[n]
			colN := cell.Column + dX[n]
			if labels.InBounds(rowN, colN) {
				toFill.Push(structures.GridCell{Row: rowN, Column: colN})
			}
		}
	}
}
