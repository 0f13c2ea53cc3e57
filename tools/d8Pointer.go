// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/brendancol/richdem/geospatialfiles/raster"
)

// D8Pointer computes the D8 flow-pointer grid of a DEM: each cell receives
// the direction (1 through 8, clockwise from the north-east neighbour) of
// its steepest downslope neighbour, 0 when no neighbour is lower (the cell
// is part of a flat or pit) and -1 outside the data domain. This grid is
// the flow-direction input of the ResolveFlats tool.
type D8Pointer struct {
	inputFile   string
	outputFile  string
	toolManager *PluginToolManager
}

func (this *D8Pointer) GetName() string {
	s := "D8Pointer"
	return getFormattedToolName(s)
}

func (this *D8Pointer) GetDescription() string {
	s := "Calculates a D8 flow-pointer grid from a DEM"
	return getFormattedToolDescription(s)
}

func (this *D8Pointer) GetHelpDocumentation() string {
	ret := "This tool calculates the D8 flow pointer (i.e. flow direction) raster of a digital elevation model (DEM). Directions are numbered 1 to 8, clockwise starting at the north-east neighbour; cells with no downslope neighbour receive 0 and are candidates for the ResolveFlats tool."
	return ret
}

func (this *D8Pointer) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *D8Pointer) GetArgDescriptions() [][]string {
	numArgs := 2

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

	return ret
}

func (this *D8Pointer) ParseArguments(args []string) {
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

	this.Run()
}

func (this *D8Pointer) CollectArguments() {
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

	this.ParseArguments([]string{inputFile, outputFile})
}

func (this *D8Pointer) Run() {
	start1 := time.Now()

	var z, zN, slope, maxSlope float64
	var progress, oldProgress int
	var dir float64
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
	nodata := dem.NoDataValue
	cellSizeX := dem.GetCellSizeX()
	cellSizeY := dem.GetCellSizeY()
	diagDist := math.Sqrt(cellSizeX*cellSizeX + cellSizeY*cellSizeY)
	dist := [8]float64{diagDist, cellSizeX, diagDist, cellSizeY, diagDist, cellSizeX, diagDist, cellSizeY}

	// create the output file
	config := raster.NewDefaultRasterConfig()
	config.NoDataValue = -1
	config.InitialValue = -1
	config.PreferredPalette = dem.GetRasterConfig().PreferredPalette
	config.CoordinateRefSystemWKT = dem.GetRasterConfig().CoordinateRefSystemWKT
	config.EPSGCode = dem.GetRasterConfig().EPSGCode
	rout, err := raster.CreateNewRaster(this.outputFile, rows, columns,
		dem.North, dem.South, dem.East, dem.West, config)
	if err != nil {
		panic("Failed to write raster")
	}

	println("Calculating pointer grid...")
	oldProgress = 0
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			z = dem.Value(row, col)
			if z != nodata {
				dir = 0
				maxSlope = math.Inf(-1)
				for n := 0; n < 8; n++ {
					zN = dem.Value(row+dY[n], col+dX[n])
					if zN != nodata {
						slope = (z - zN) / dist[n]
						if slope > maxSlope {
							maxSlope = slope
							dir = float64(n) + 1
						}
					}
				}
				if maxSlope > 0 {
					rout.SetValue(row, col, dir)
				} else {
					rout.SetValue(row, col, 0)
				}
			}
		}
		progress = int(100.0 * row / rowsLessOne)
		if progress != oldProgress {
			printf("\rProgress: %v%%", progress)
			oldProgress = progress
		}
	}

	println("\nSaving data...")
	rout.AddMetadataEntry(fmt.Sprintf("Created on %s", time.Now().Local()))
	elapsed := time.Since(start1)
	rout.AddMetadataEntry(fmt.Sprintf("Elapsed Time: %v", elapsed))
	rout.AddMetadataEntry("Created by D8Pointer tool")
	rout.Save()

	println("Operation complete!")

	overallTime := time.Since(start1)
	value := fmt.Sprintf("Elapsed time (total): %s", overallTime)
	println(value)
}
