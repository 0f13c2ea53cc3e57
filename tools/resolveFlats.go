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

	"github.com/brendancol/richdem/flats"
	"github.com/brendancol/richdem/geospatialfiles/raster"
	"github.com/brendancol/richdem/structures"
)

// ResolveFlats computes an elevation-increment mask that drains the flat
// areas of a DEM, given the DEM and its D8 flow-pointer grid. With the
// apply option the scaled increments are added to the DEM and a corrected
// DEM is written instead of the raw mask.
type ResolveFlats struct {
	inputDemFile     string
	inputPointerFile string
	outputFile       string
	applyIncrements  bool
	toolManager      *PluginToolManager
}

func (this *ResolveFlats) GetName() string {
	s := "ResolveFlats"
	return getFormattedToolName(s)
}

func (this *ResolveFlats) GetDescription() string {
	s := "Resolves flat areas in DEMs using gradient masking"
	return getFormattedToolDescription(s)
}

func (this *ResolveFlats) GetHelpDocumentation() string {
	ret := "This tool resolves the flat areas (i.e. areas with no defined D8 flow direction) of a digital elevation model (DEM). It develops an elevation-increment mask which, added to the DEM, drains every flat toward its outlets with a convergent flow pattern. Flats without any outlet are reported and left unresolved; remove them first with the FillDepressions tool. The flow-pointer input is produced by the D8Pointer tool."
	return ret
}

func (this *ResolveFlats) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *ResolveFlats) GetArgDescriptions() [][]string {
	numArgs := 4

	ret := make([][]string, numArgs)
	for i := range ret {
		ret[i] = make([]string, 3)
	}
	ret[0][0] = "InputDEM"
	ret[0][1] = "string"
	ret[0][2] = "The input DEM name, with directory and file extension"

	ret[1][0] = "InputPointer"
	ret[1][1] = "string"
	ret[1][2] = "The input D8 flow-pointer name, with directory and file extension"

	ret[2][0] = "OutputFile"
	ret[2][1] = "string"
	ret[2][2] = "The output filename, with directory and file extension"

	ret[3][0] = "ApplyIncrements"
	ret[3][1] = "bool"
	ret[3][2] = "Output a corrected DEM rather than the increment mask?"

	return ret
}

func (this *ResolveFlats) ParseArguments(args []string) {
	inputDemFile := strings.TrimSpace(args[0])
	if !strings.Contains(inputDemFile, pathSep) {
		inputDemFile = this.toolManager.workingDirectory + inputDemFile
	}
	this.inputDemFile = inputDemFile
	if _, err := os.Stat(this.inputDemFile); os.IsNotExist(err) {
		printf("no such file or directory: %s\n", this.inputDemFile)
		return
	}

	inputPointerFile := strings.TrimSpace(args[1])
	if !strings.Contains(inputPointerFile, pathSep) {
		inputPointerFile = this.toolManager.workingDirectory + inputPointerFile
	}
	this.inputPointerFile = inputPointerFile
	if _, err := os.Stat(this.inputPointerFile); os.IsNotExist(err) {
		printf("no such file or directory: %s\n", this.inputPointerFile)
		return
	}

	outputFile := strings.TrimSpace(args[2])
	if !strings.Contains(outputFile, pathSep) {
		outputFile = this.toolManager.workingDirectory + outputFile
	}
	rasterType, err := raster.DetermineRasterFormat(outputFile)
	if rasterType == raster.RT_UnknownRaster || err == raster.UnsupportedRasterFormatError {
		outputFile = outputFile + ".asc" // default to an ArcGIS ASCII raster
	}
	this.outputFile = outputFile

	this.applyIncrements = false
	if len(strings.TrimSpace(args[3])) > 0 && args[3] != "not specified" {
		var err error
		if this.applyIncrements, err = strconv.ParseBool(strings.TrimSpace(args[3])); err != nil {
			this.applyIncrements = false
			println(err)
		}
	}
	this.Run()
}

func (this *ResolveFlats) CollectArguments() {
	consolereader := bufio.NewReader(os.Stdin)

	// get the input DEM file name
	print("Enter the DEM file name (incl. file extension): ")
	inputDemFile, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	// get the input pointer file name
	print("Enter the D8 pointer file name (incl. file extension): ")
	inputPointerFile, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	// get the output file name
	print("Enter the output file name (incl. file extension): ")
	outputFile, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	// get the apply-increments argument
	print("Output a corrected DEM rather than the mask (T or F)? ")
	applyStr, err := consolereader.ReadString('\n')
	if err != nil {
		println(err)
	}

	this.ParseArguments([]string{inputDemFile, inputPointerFile, outputFile, applyStr})
}

// consoleReporter forwards the flat-resolution diagnostics to the console.
type consoleReporter struct{}

func (consoleReporter) Printf(format string, a ...interface{}) {
	printf(format, a...)
}

func (this *ResolveFlats) Run() {
	start1 := time.Now()

	println("Reading DEM data...")
	dem, err := raster.CreateRasterFromFile(this.inputDemFile)
	if err != nil {
		println(err.Error())
		return
	}

	println("Reading pointer data...")
	pntr, err := raster.CreateRasterFromFile(this.inputPointerFile)
	if err != nil {
		println(err.Error())
		return
	}

	rows := dem.Rows
	columns := dem.Columns
	if pntr.Rows != rows || pntr.Columns != columns {
		println(flats.MismatchedGridsError.Error())
		return
	}
	demNodata := dem.NoDataValue
	pntrNodata := pntr.NoDataValue

	elevations := structures.NewRectangularArray[float64](rows, columns, demNodata)
	flowdirs := structures.NewRectangularArray[int8](rows, columns, flats.PointerNodata)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			elevations.SetValue(row, col, dem.Value(row, col))
			p := pntr.Value(row, col)
			if p == pntrNodata {
				flowdirs.SetValue(row, col, flats.PointerNodata)
			} else {
				flowdirs.SetValue(row, col, int8(p))
			}
		}
	}

	start2 := time.Now()
	res, err := flats.ResolveFlats(elevations, flowdirs, consoleReporter{})
	if err != nil {
		println(err.Error())
		return
	}
	elapsed := time.Since(start2)
	printf("Outcome: %v\n", res.Outcome)

	// output the data
	config := raster.NewDefaultRasterConfig()
	config.PreferredPalette = dem.GetRasterConfig().PreferredPalette
	config.CoordinateRefSystemWKT = dem.GetRasterConfig().CoordinateRefSystemWKT
	config.EPSGCode = dem.GetRasterConfig().EPSGCode

	if this.applyIncrements {
		// the increments are integer counts; scale them small enough that
		// they never reorder genuinely distinct elevations
		minVal := dem.GetMinimumValue()
		elevDigits := len(strconv.Itoa(int(dem.GetMaximumValue() - minVal)))
		elevMultiplier := math.Pow(10, float64(8-elevDigits))
		smallNum := 1 / elevMultiplier

		config.NoDataValue = demNodata
		config.InitialValue = demNodata
		rout, err := raster.CreateNewRaster(this.outputFile, rows, columns,
			dem.North, dem.South, dem.East, dem.West, config)
		if err != nil {
			panic("Failed to write raster")
		}
		for row := 0; row < rows; row++ {
			for col := 0; col < columns; col++ {
				z := dem.Value(row, col)
				if z == demNodata {
					continue
				}
				if m := res.Mask.Value(row, col); m != flats.MaskNodata {
					z += float64(m) * smallNum
				}
				rout.SetValue(row, col, z)
			}
		}
		rout.AddMetadataEntry(fmt.Sprintf("Created on %s", time.Now().Local()))
		rout.AddMetadataEntry(fmt.Sprintf("Elapsed Time: %v", elapsed))
		rout.AddMetadataEntry("Created by ResolveFlats tool")
		rout.Save()
	} else {
		config.NoDataValue = float64(flats.MaskNodata)
		config.InitialValue = float64(flats.MaskNodata)
		rout, err := raster.CreateNewRaster(this.outputFile, rows, columns,
			dem.North, dem.South, dem.East, dem.West, config)
		if err != nil {
			panic("Failed to write raster")
		}
		for row := 0; row < rows; row++ {
			for col := 0; col < columns; col++ {
				if m := res.Mask.Value(row, col); m != flats.MaskNodata {
					rout.SetValue(row, col, float64(m))
				}
			}
		}
		rout.AddMetadataEntry(fmt.Sprintf("Created on %s", time.Now().Local()))
		rout.AddMetadataEntry(fmt.Sprintf("Elapsed Time: %v", elapsed))
		rout.AddMetadataEntry("Created by ResolveFlats tool")
		rout.Save()
	}

	println("Operation complete!")

	value := fmt.Sprintf("Elapsed time (excluding file I/O): %s", elapsed)
	println(value)

	overallTime := time.Since(start1)
	value = fmt.Sprintf("Elapsed time (total): %s", overallTime)
	println(value)
}
