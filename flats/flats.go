// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package flats resolves the flat regions of a digital elevation model so
// that flow-routing algorithms can drain them. A flat is a maximal
// 8-connected group of cells sharing one elevation, none of which has a
// defined D8 flow direction. For every flat that touches a potential outlet
// the package computes an integer elevation-increment mask which, once
// applied to the DEM, gives each flat cell a strictly monotonic path toward
// the outlet while biasing flow away from adjoining higher terrain. Flats
// with no outlet are reported and left untouched for a depression-filling
// stage to deal with.
package flats

import (
	"errors"

	"github.com/brendancol/richdem/structures"
)

// D8 flow-pointer conventions shared with the pointer tools: directions are
// numbered 1 through 8 clockwise starting at the north-east neighbour,
// NoFlow marks a cell with no defined downslope direction and PointerNodata
// marks a cell outside the data domain.
const (
	NoFlow        int8 = 0
	PointerNodata int8 = -1
)

// MaskNodata is the sentinel held by unresolved cells of the increment mask.
const MaskNodata = -1

// Neighbour offsets, in the same clockwise-from-north-east ordering used by
// the D8 pointer tools.
var dX = [8]int{1, 1, 1, 0, -1, -1, -1, 0}
var dY = [8]int{-1, 0, 1, 1, 1, 0, -1, -1}

var MismatchedGridsError = errors.New("The elevation and flow-pointer grids have mismatched dimensions.")

// Reporter receives the diagnostic messages emitted while a resolution run
// progresses. The tools bind one to their console output; library callers
// may pass nil for silence.
type Reporter interface {
	Printf(format string, a ...interface{})
}

type nopReporter struct{}

func (nopReporter) Printf(format string, a ...interface{}) {}

// Outcome summarizes the structural condition found by ResolveFlats.
type Outcome int

const (
	// NoFlats: no cell carried the NoFlow pointer value; the mask is
	// entirely nodata.
	NoFlats Outcome = iota
	// Resolved: every flat had at least one outlet and received mask values.
	Resolved
	// NoOutlets: flats exist but none of them has an outlet; the mask is
	// entirely nodata.
	NoOutlets
	// PartiallyResolved: flats with outlets were masked, the remainder were
	// left at nodata for a depression-filling stage.
	PartiallyResolved
)

func (o Outcome) String() string {
	switch o {
	case NoFlats:
		return "no flats"
	case Resolved:
		return "resolved"
	case NoOutlets:
		return "flats without outlets"
	case PartiallyResolved:
		return "partially resolved"
	}
	return "unknown"
}

// Resolution holds the outputs of a flat-resolution run. The mask uses
// MaskNodata for every cell that is not part of a drainable flat; the label
// grid uses -1 for every cell that does not belong to a drainable flat.
type Resolution struct {
	Mask      *structures.RectangularArray[int]
	Labels    *structures.RectangularArray[int]
	FlatCount int
	Outcome   Outcome
}
