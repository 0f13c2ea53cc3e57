// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package flats

import (
	"cmp"
	"sync"

	"github.com/brendancol/richdem/structures"
)

// ResolveFlats runs the full flat-resolution pipeline over an elevation
// grid and its D8 flow-pointer grid: find the flat edges, label the
// drainable flats, build the two breadth-first gradients (toward the low
// edges and away from the high edges) and combine them into the increment
// mask. The inputs are only read; all working grids are allocated here and
// the mask and label grids are handed back in the Resolution.
//
// Flats that no low edge can reach are left at nodata in both outputs and
// reported through the Outcome. A nil reporter silences diagnostics.
func ResolveFlats[T cmp.Ordered](elevations *structures.RectangularArray[T],
	flowdirs *structures.RectangularArray[int8], rep Reporter) (*Resolution, error) {

	if rep == nil {
		rep = nopReporter{}
	}
	if elevations.GetRows() != flowdirs.GetRows() ||
		elevations.GetColumns() != flowdirs.GetColumns() {
		return nil, MismatchedGridsError
	}

	rows := flowdirs.GetRows()
	columns := flowdirs.GetColumns()

	rep.Printf("The labels matrix will require approximately %vMB of RAM.\n",
		rows*columns*8/1024/1024)
	labels := structures.NewRectangularArray[int](rows, columns, -1)
	labels.InitializeWithConstant(-1)

	rep.Printf("The flat resolution mask will require approximately %vMB of RAM.\n",
		rows*columns*8/1024/1024)
	mask := structures.NewRectangularArray[int](rows, columns, MaskNodata)
	mask.InitializeWithConstant(MaskNodata)

	rep.Printf("Searching for flats...\n")
	lowEdges, highEdges := findFlatEdges(elevations, flowdirs)

	if len(lowEdges) == 0 {
		outcome := NoFlats
		if len(highEdges) > 0 {
			rep.Printf("There were flats, but none of them had outlets!\n")
			outcome = NoOutlets
		} else {
			rep.Printf("There were no flats!\n")
		}
		return &Resolution{Mask: mask, Labels: labels, Outcome: outcome}, nil
	}

	rep.Printf("Labeling flats...\n")
	flatCount := 0
	for _, c := range lowEdges {
		if labels.Value(c.Row, c.Column) == -1 {
			labelFlat(c, flatCount, labels, elevations, flowdirs)
			flatCount++
		}
	}
	rep.Printf("Found %v unique flats.\n", flatCount)

	// High edges of flats no low edge reached belong to depressions this
	// stage cannot drain; drop them so the away gradient stays inside the
	// labelled flats.
	drainable := make([]structures.GridCell, 0, len(highEdges))
	for _, c := range highEdges {
		if labels.Value(c.Row, c.Column) != -1 {
			drainable = append(drainable, c)
		}
	}
	outcome := Resolved
	if len(drainable) < len(highEdges) {
		rep.Printf("Not all flats have outlets; the DEM contains sinks/pits/depressions!\n")
		outcome = PartiallyResolved
	}
	highEdges = drainable

	rep.Printf("The incrementation matrices will require approximately %vMB of RAM.\n",
		2*rows*columns*8/1024/1024)
	towards := structures.NewRectangularArray[int](rows, columns, 0)
	away := structures.NewRectangularArray[int](rows, columns, 0)
	towardsHeight := make([]int, flatCount)
	awayHeight := make([]int, flatCount)

	// The two gradient passes write to disjoint grids and their own height
	// tables and otherwise only read shared inputs, so they run as
	// independent tasks. Only the away pass's height table is carried into
	// the combination step.
	rep.Printf("Performing Barnes flat resolution steps...\n")
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		buildGradient(elevations, flowdirs, towards, lowEdges, towardsHeight, labels)
	}()
	go func() {
		defer wg.Done()
		buildGradient(elevations, flowdirs, away, highEdges, awayHeight, labels)
	}()
	wg.Wait()

	rep.Printf("Combining Barnes flat resolution steps...\n")
	combineGradients(elevations, towards, away, mask, lowEdges, awayHeight, labels)

	return &Resolution{Mask: mask, Labels: labels, FlatCount: flatCount, Outcome: outcome}, nil
}
