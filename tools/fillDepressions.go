// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brendancol/richdem/geospatialfiles/raster"
	"github.com/brendancol/richdem/structures"
)

type gridCell struct {
	row       int
	column    int
	flatIndex int
}

func newGridCell(r, c, f int) gridCell {
	return gridCell{row: r, column: c, flatIndex: f}
}

// FillDepressions removes the sinks of a DEM by flooding inward from the
// data edges with a priority queue. Flats without outlets cannot be drained
// by ResolveFlats; filling the depressions first guarantees every remaining
// flat has at least one outlet.
type FillDepressions struct {
	inputFile   string
	outputFile  string
	fixFlats    bool
	toolManager *PluginToolManager
}

func (this *FillDepressions) GetName() string {
	s := "FillDepressions"
	return getFormattedToolName(s)
}

func (this *FillDepressions) GetDescription() string {
	s := "Removes depressions in DEMs using filling"
	return getFormattedToolDescription(s)
}

func (this *FillDepressions) GetHelpDocumentation() string {
	ret := "This tool is used to remove the sinks (i.e. topographic depressions) from digital elevation models (DEMs) using an efficient depression filling method. Filled depressions become flat areas; either enable the flat-fixing option or run the ResolveFlats tool afterwards to impose drainage on them."
	return ret
}

func (this *FillDepressions) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *FillDepressions) GetArgDescriptions() [][]string {
	numArgs := 3

	ret := make([][]string, numArgs)
	for i := range ret {
		ret[i] = make([]string, 3)
	}
	ret[0][0] = "InputDEM"
	ret[0][1] = "string"
	ret[0][2] = "The input DEM name, with directory and file extension"

	ret[1][0] = "OutputFile"
	ret[1][1] = "string"
	ret[1][2] = "The output filename, with directory and file extension"

	ret[2][0] = "FixFlats"
	ret[2][1] = "bool"
	ret[2][2] = "Should the resulting flat areas be fixed?"

	return ret
}

func (this *FillDepressions) ParseArguments(args []string) {
	inputFile := strings.TrimSpace(args[0])
	if !strings.Contains(inputFile, pathSep) {
		inputFile = this.toolManager.workingDirectory + inputFile
	}
	this.inputFile = inputFile
	if _, err := os.Stat(this.inputFile); os.IsNotExist(err) {
		printf("no such file or directory: %s\n", this.inputFile)
		return
	}

	outputFile := strings.TrimSpace(args[1])
	if !strings.Contains(outputFile, pathSep) {
		outputFile = this.toolManager.workingDirectory + outputFile
	}
	rasterType, err := raster.DetermineRasterFormat(outputFile)
	if rasterType == raster.RT_UnknownRaster || err == raster.UnsupportedRasterFormatError {
		outputFile = outputFile + ".asc" // default to an ArcGIS ASCII raster
	}
	this.outputFile = outputFile

	this.fixFlats = false
	if len(strings.TrimSpace(args[2])) > 0 && args[2] != "not specified" {
		var err error
		if this.fixFlats, err = strconv.ParseBool(strings.TrimSpace(args[2])); err != nil {
			this.fixFlats = false
			println(err)
		}
	}
	this.Run()
}

func (this *FillDepressions) CollectArguments() {
	consolereader := bufio.NewReader(os.Stdin)

	// get the input file name
	print("Enter the DEM file name (incl. file extension): ")
	inputFile, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	// get the output file name
	print("Enter the output file name (incl. file extension): ")
	outputFile, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	// get the fixflats argument
	print("Fix the resulting flat areas (T or F)? ")
	fixFlatsStr, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	this.ParseArguments([]string{inputFile, outputFile, fixFlatsStr})
}

func (this *FillDepressions) Run() {
	start1 := time.Now()

	var progress, oldProgress, col, row, i, n int
	var colN, rowN, flatindex int
	numSolvedCells := 0
	var z, zN float64
	var gc gridCell
	var p int64
	var isEdgeCell bool
	dX := [8]int{1, 1, 1, 0, -1, -1, -1, 0}
	dY := [8]int{-1, 0, 1, 1, 1, 0, -1, -1}

	println("Reading DEM data...")
	dem, err := raster.CreateRasterFromFile(this.inputFile)
	if err != nil {
		println(err.Error())
		return
	}
	rows := dem.Rows
	columns := dem.Columns
	rowsLessOne := rows - 1
	if rowsLessOne < 1 {
		rowsLessOne = 1 // single-row rasters would otherwise divide by zero
	}
	numCellsTotal := rows * columns
	nodata := dem.NoDataValue
	demConfig := dem.GetRasterConfig()

	// output the data
	config := raster.NewDefaultRasterConfig()
	config.PreferredPalette = demConfig.PreferredPalette
	config.NoDataValue = nodata
	config.InitialValue = nodata
	config.DisplayMinimum = demConfig.DisplayMinimum
	config.DisplayMaximum = demConfig.DisplayMaximum
	config.CoordinateRefSystemWKT = demConfig.CoordinateRefSystemWKT
	config.EPSGCode = demConfig.EPSGCode
	rout, err := raster.CreateNewRaster(this.outputFile, rows, columns,
		dem.North, dem.South, dem.East, dem.West, config)
	if err != nil {
		panic("Failed to write raster")
	}

	minVal := dem.GetMinimumValue()
	elevDigits := len(strconv.Itoa(int(dem.GetMaximumValue() - minVal)))
	elevMultiplier := math.Pow(10, float64(8-elevDigits))
	SMALL_NUM := 1 / elevMultiplier
	if !this.fixFlats {
		SMALL_NUM = 0
	}

	start2 := time.Now()

	// Fill the DEM. The in-queue grid is padded by one cell on each side so
	// the neighbour scans never index outside it.
	inQueue := structures.Create2dArray[bool](rows+2, columns+2)

	numSolvedCells = 0
	pq := structures.NewPQueue[gridCell](structures.MINPQ)

	// find the edge cells and initialize the grids
	printf("\r                                                      ")
	printf("\rFilling DEM (1 of 2): %v%%", 0)
	oldProgress = 0
	for row = 0; row < rows; row++ {
		for col = 0; col < columns; col++ {
			z = dem.Value(row, col)
			if z != nodata {
				isEdgeCell = false
				for n = 0; n < 8; n++ {
					zN = dem.Value(row+dY[n], col+dX[n])
					if zN == nodata {
						isEdgeCell = true
						break
					}
				}

				if isEdgeCell {
					gc = newGridCell(row, col, 0)
					p = int64(z*elevMultiplier) * 100000
					pq.Push(gc, p)
					inQueue[row+1][col+1] = true
					rout.SetValue(row, col, z)
					numSolvedCells++
				}
			} else {
				numSolvedCells++
			}
		}
		progress = int(100.0 * row / rowsLessOne)
		if progress != oldProgress {
			printf("\rFilling DEM (1 of 2): %v%%", progress)
			oldProgress = progress
		}
	}

	printf("\r                                                      ")
	oldProgress = -1
	for numSolvedCells < numCellsTotal {
		gc = pq.Pop()
		row = gc.row
		col = gc.column
		flatindex = gc.flatIndex
		z = rout.Value(row, col)
		for i = 0; i < 8; i++ {
			rowN = row + dY[i]
			colN = col + dX[i]
			zN = dem.Value(rowN, colN)
			if zN != nodata && !inQueue[rowN+1][colN+1] {
				n = 0
				if zN <= z {
					zN = z + SMALL_NUM
					n = flatindex + 1
				}
				numSolvedCells++
				rout.SetValue(rowN, colN, zN)
				gc = newGridCell(rowN, colN, n)
				p = int64(zN*elevMultiplier)*100000 + int64(n)%100000
				pq.Push(gc, p)
				inQueue[rowN+1][colN+1] = true
			}
		}
		progress = int(100.0 * numSolvedCells / numCellsTotal)
		if progress != oldProgress {
			printf("\rFilling DEM (2 of 2): %v%%", progress)
			oldProgress = progress
		}
	}

	rout.AddMetadataEntry(fmt.Sprintf("Created on %s", time.Now().Local()))
	elapsed := time.Since(start2)
	rout.AddMetadataEntry(fmt.Sprintf("Elapsed Time: %v", elapsed))
	rout.AddMetadataEntry("Created by FillDepressions tool")
	rout.Save()

	println("\nOperation complete!")

	value := fmt.Sprintf("Elapsed time (excluding file I/O): %s", elapsed)
	println(value)

	overallTime := time.Since(start1)
	value = fmt.Sprintf("Elapsed time (total): %s", overallTime)
	println(value)
}
