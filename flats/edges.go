// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"cmp"
	"runtime"
	"sync"

	"github.com/brendancol/richdem/structures"
)

// findFlatEdges scans the flow-pointer grid and classifies every flat cell
// as a low edge (it has a same-elevation neighbour with a defined pointer,
// i.e. a candidate outlet) and/or a high edge (it has a strictly higher
// neighbour). A cell can appear in both sets. Cells outside the data
// domain, and neighbours outside it, are skipped.
//
// The scan only reads the two input grids, so it is partitioned into row
// blocks processed concurrently; each block appends to private buffers that
// are concatenated in block order afterwards, keeping the seed ordering
// deterministic.
func findFlatEdges[T cmp.Ordered](elevations *structures.RectangularArray[T],
	flowdirs *structures.RectangularArray[int8]) (lowEdges, highEdges []structures.GridCell) {

	rows := flowdirs.GetRows()
	columns := flowdirs.GetColumns()

	numCPUs := runtime.NumCPU()
	rowBlockSize := rows / numCPUs
	if rowBlockSize < 1 {
		rowBlockSize = 1
	}

	type edgeSets struct {
		low  []structures.GridCell
		high []structures.GridCell
	}
	numBlocks := (rows + rowBlockSize - 1) / rowBlockSize
	blocks := make([]edgeSets, numBlocks)

	var wg sync.WaitGroup
	startingRow := 0
	k := 0
	for startingRow < rows {
		endingRow := startingRow + rowBlockSize - 1
		if endingRow >= rows {
			endingRow = rows - 1
		}
		wg.Add(1)
		go func(rowSt, rowEnd, k int) {
			defer wg.Done()
			var low, high []structures.GridCell
			for row := rowSt; row <= rowEnd; row++ {
				for col := 0; col < columns; col++ {
					if flowdirs.Value(row, col) != NoFlow {
						continue
					}
					z := elevations.Value(row, col)
					isLow, isHigh := false, false
					for n := 0; n < 8; n++ {
						rowN := row + dY[n]
						colN := col + dX[n]
						if !flowdirs.InBounds(rowN, colN) {
							continue
						}
						dirN := flowdirs.Value(rowN, colN)
						if dirN == PointerNodata {
							continue
						}
						zN := elevations.Value(rowN, colN)
						if !isLow && dirN != NoFlow && zN == z {
							isLow = true
						}
						if !isHigh && zN > z {
							isHigh = true
						}
						if isLow && isHigh {
							break
						}
					}
					if isLow {
						low = append(low, structures.GridCell{Row: row, Column: col})
					}
					if isHigh {
						high = append(high, structures.GridCell{Row: row, Column: col})
					}
				}
			}
			blocks[k] = edgeSets{low: low, high: high}
		}(startingRow, endingRow, k)
		startingRow = endingRow + 1
		k++
	}
	wg.Wait()

	for _, b := range blocks {
		lowEdges = append(lowEdges, b.low...)
		highEdges = append(highEdges, b.high...)
	}
	return lowEdges, highEdges
}
