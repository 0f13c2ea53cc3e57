// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"path/filepath"
	"testing"

	"github.com/brendancol/richdem/geospatialfiles/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDem(t *testing.T, fileName string, values [][]float64, nodata float64) {
	t.Helper()
	rows := len(values)
	columns := len(values[0])
	config := raster.NewDefaultRasterConfig()
	config.NoDataValue = nodata
	config.InitialValue = nodata
	rout, err := raster.CreateNewRaster(fileName, rows, columns,
		float64(rows), 0.0, float64(columns), 0.0, config)
	require.NoError(t, err)
	for row := 0; row < rows; row++ {
		rout.SetRowValues(row, values[row])
	}
	require.NoError(t, rout.Save())
}

func TestD8PointerTiltedPlane(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	outFile := filepath.Join(dir, "pntr.asc")

	// a plane sloping down toward the east
	writeDem(t, demFile, [][]float64{
		{10, 9, 8},
		{10, 9, 8},
		{10, 9, 8},
	}, -9999.0)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	d8p := new(D8Pointer)
	d8p.SetToolManager(tm)
	d8p.ParseArguments([]string{demFile, outFile})

	pntr, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)
	require.Equal(t, 3, pntr.Rows)
	require.Equal(t, 3, pntr.Columns)

	// the first two columns drain due east (direction 2)
	for row := 0; row < 3; row++ {
		assert.Equal(t, 2.0, pntr.Value(row, 0))
		assert.Equal(t, 2.0, pntr.Value(row, 1))
		// the eastern edge has no lower neighbour
		assert.Equal(t, 0.0, pntr.Value(row, 2))
	}
}

func TestD8PointerSingleRow(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	outFile := filepath.Join(dir, "pntr.asc")

	writeDem(t, demFile, [][]float64{
		{10, 9, 8},
	}, -9999.0)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	d8p := new(D8Pointer)
	d8p.SetToolManager(tm)
	d8p.ParseArguments([]string{demFile, outFile})

	pntr, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)
	require.Equal(t, 1, pntr.Rows)

	assert.Equal(t, 2.0, pntr.Value(0, 0))
	assert.Equal(t, 2.0, pntr.Value(0, 1))
	assert.Equal(t, 0.0, pntr.Value(0, 2))
}

func TestFillDepressionsSingleRow(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	outFile := filepath.Join(dir, "filled.asc")

	writeDem(t, demFile, [][]float64{
		{5, 1, 5},
	}, -9999.0)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	fd := new(FillDepressions)
	fd.SetToolManager(tm)
	fd.ParseArguments([]string{demFile, outFile, "false"})

	filled, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)

	// every cell of a single-row raster touches the data edge, so the pit
	// keeps its elevation; the run just must complete
	assert.Equal(t, 5.0, filled.Value(0, 0))
	assert.Equal(t, 1.0, filled.Value(0, 1))
	assert.Equal(t, 5.0, filled.Value(0, 2))
}

func TestResolveFlatsToolMask(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	pntrFile := filepath.Join(dir, "pntr.asc")
	outFile := filepath.Join(dir, "mask.asc")

	nodata := -9999.0

	// a single flat strip bounded by nodata; the westernmost cell already
	// drains east, the two cells beside it are the flat
	writeDem(t, demFile, [][]float64{
		{nodata, nodata, nodata},
		{5, 5, 5},
		{nodata, nodata, nodata},
	}, nodata)
	writeDem(t, pntrFile, [][]float64{
		{nodata, nodata, nodata},
		{2, 0, 0},
		{nodata, nodata, nodata},
	}, nodata)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	rf := new(ResolveFlats)
	rf.SetToolManager(tm)
	rf.ParseArguments([]string{demFile, pntrFile, outFile, "false"})

	mask, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)
	require.Equal(t, 3, mask.Rows)
	require.Equal(t, 3, mask.Columns)
	assert.Equal(t, -1.0, mask.NoDataValue)

	// the cell with a defined pointer receives no increment
	assert.Equal(t, -1.0, mask.Value(1, 0))
	assert.Equal(t, 0.0, mask.Value(1, 1))
	assert.Equal(t, 2.0, mask.Value(1, 2))
	assert.Equal(t, -1.0, mask.Value(0, 0))
}

func TestResolveFlatsToolAppliedIncrements(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	pntrFile := filepath.Join(dir, "pntr.asc")
	outFile := filepath.Join(dir, "fixed.asc")

	nodata := -9999.0

	writeDem(t, demFile, [][]float64{
		{nodata, nodata, nodata},
		{5, 5, 5},
		{nodata, nodata, nodata},
	}, nodata)
	writeDem(t, pntrFile, [][]float64{
		{nodata, nodata, nodata},
		{2, 0, 0},
		{nodata, nodata, nodata},
	}, nodata)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	rf := new(ResolveFlats)
	rf.SetToolManager(tm)
	rf.ParseArguments([]string{demFile, pntrFile, outFile, "true"})

	fixed, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)

	// the increments are tiny but impose a strict west-draining order
	assert.Equal(t, 5.0, fixed.Value(1, 0))
	assert.Greater(t, fixed.Value(1, 2), fixed.Value(1, 1))
	assert.GreaterOrEqual(t, fixed.Value(1, 1), fixed.Value(1, 0))
	assert.Less(t, fixed.Value(1, 2)-5.0, 0.001)
}

func TestFillDepressionsRaisesPit(t *testing.T) {
	dir := t.TempDir()
	demFile := filepath.Join(dir, "dem.asc")
	outFile := filepath.Join(dir, "filled.asc")

	writeDem(t, demFile, [][]float64{
		{5, 5, 5},
		{5, 1, 5},
		{5, 5, 5},
	}, -9999.0)

	tm := new(PluginToolManager)
	tm.InitializeTools()
	tm.SetWorkingDirectory(dir)

	fd := new(FillDepressions)
	fd.SetToolManager(tm)
	fd.ParseArguments([]string{demFile, outFile, "false"})

	filled, err := raster.CreateRasterFromFile(outFile)
	require.NoError(t, err)

	// the pit is raised to the level of its lowest rim cell
	assert.Equal(t, 5.0, filled.Value(1, 1))
	assert.Equal(t, 5.0, filled.Value(0, 0))
}

func TestPluginToolManagerRegistry(t *testing.T) {
	tm := new(PluginToolManager)
	tm.InitializeTools()

	list := tm.GetListOfTools()
	assert.Len(t, list, 3)

	help, err := tm.GetToolHelp("resolveflats")
	require.NoError(t, err)
	assert.Contains(t, help, "flat")

	_, err = tm.GetToolHelp("nosuchtool")
	assert.Error(t, err)

	args, err := tm.GetToolArgDescriptions("d8pointer")
	require.NoError(t, err)
	assert.Len(t, args, 2)
}
