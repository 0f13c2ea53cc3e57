// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package raster provides support for reading and creating common
// geospatial raster data formats.
package raster

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// RasterType is used to specify a data format of a raster file
type RasterType int

// Integer constants used to specify each of the supported raster formats
const (
	RT_UnknownRaster RasterType = iota
	RT_ArcGisAsciiRaster
	RT_GrassAsciiRaster
)

var rasterTypeList = []string{
	"UnknownRaster",
	"ArcGisAsciiRaster",
	"GrassAsciiRaster",
}

// String returns the English name of the RasterType ("ArcGisAsciiRaster",
// "GrassAsciiRaster", ...).
func (rt RasterType) String() string { return rasterTypeList[rt] }

var rasterExtensionList = [][]string{
	{".*"},
	{".txt", ".asc"},
	{".txt", ".grd"},
}

// Returns a list of the file extensions associated with a particular raster
// format.
func (rt RasterType) GetExtensions() []string {
	return rasterExtensionList[rt]
}

func IsSupportedRasterFileExtension(fileName string) bool {
	fileExtension := strings.ToLower(filepath.Ext(fileName))
	for i, extensions := range rasterExtensionList {
		if i == 0 {
			continue
		}
		for _, ext := range extensions {
			if fileExtension == ext {
				return true
			}
		}
	}
	return false
}

// Attempts to determine the raster format from the filename. When the
// extension is ambiguous and the file already exists, the header contents
// decide; when the file does not exist yet, the first matching format is
// returned along with MultipleRasterFormatError as a warning.
func DetermineRasterFormat(fileName string) (RasterType, error) {
	fileExtension := strings.ToLower(filepath.Ext(fileName))
	list := make([]RasterType, 0)
	for i, extensions := range rasterExtensionList {
		if i == 0 {
			continue
		}
		for _, ext := range extensions {
			if fileExtension == ext {
				list = append(list, RasterType(i))
			}
		}
	}

	if len(list) == 0 {
		return RT_UnknownRaster, UnsupportedRasterFormatError
	}
	if len(list) == 1 {
		return list[0], nil
	}

	// conflict resolution; sniff the header of an existing file
	if _, err := os.Stat(fileName); err == nil {
		f, err := os.Open(fileName)
		if err != nil {
			return RT_UnknownRaster, FileOpeningError
		}
		defer f.Close()

		contents := ""
		scanner := bufio.NewScanner(f)
		for j := 0; scanner.Scan() && j < 6; j++ {
			contents += strings.ToLower(scanner.Text()) + "\n"
		}

		if strings.Contains(contents, "ncols") &&
			strings.Contains(contents, "nrows") &&
			strings.Contains(contents, "xll") &&
			strings.Contains(contents, "yll") {
			return RT_ArcGisAsciiRaster, nil
		}
		if strings.Contains(contents, "north") &&
			strings.Contains(contents, "south") &&
			strings.Contains(contents, "east") &&
			strings.Contains(contents, "west") &&
			strings.Contains(contents, "rows") &&
			strings.Contains(contents, "cols") {
			return RT_GrassAsciiRaster, nil
		}
		return RT_UnknownRaster, FileIsNotProperlyFormated
	}

	return list[0], MultipleRasterFormatError
}

func ListAllSupportedRasterFormats() []string {
	return rasterTypeList
}

func GetMapOfFormatsAndExtensions() map[string][]string {
	m := make(map[string][]string)
	for i, val := range rasterTypeList {
		m[val] = rasterExtensionList[i]
	}
	return m
}
