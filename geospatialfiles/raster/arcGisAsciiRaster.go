// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Used to manipulate an ArcGIS ASCII raster (.asc) file.
type arcGisAsciiRaster struct {
	fileName     string
	data         []float64
	header       arcGisAsciiRasterHeader
	minimumValue float64
	maximumValue float64
	config       *RasterConfig
}

type arcGisAsciiRasterHeader struct {
	rows           int
	columns        int
	numCells       int
	north          float64
	south          float64
	east           float64
	west           float64
	cellSize       float64
	cellCornerMode bool
	nodata         float64
}

func (r *arcGisAsciiRaster) InitializeRaster(fileName string,
	rows int, columns int, north float64, south float64,
	east float64, west float64, config *RasterConfig) error {

	r.config = config
	r.header.rows = rows
	r.header.columns = columns
	r.header.numCells = rows * columns
	r.header.north = north
	r.header.south = south
	r.header.east = east
	r.header.west = west
	r.header.cellCornerMode = true
	r.header.cellSize = (east - west) / float64(columns)
	r.header.nodata = config.NoDataValue

	r.fileName = fileName
	r.minimumValue = math.MaxFloat64
	r.maximumValue = -math.MaxFloat64

	// does the file already exist? If yes, delete it.
	if _, err := os.Stat(r.fileName); err == nil {
		if err = os.Remove(r.fileName); err != nil {
			return FileDeletingError
		}
	}

	r.data = make([]float64, r.header.numCells)
	if config.InitialValue != 0 {
		for i := range r.data {
			r.data[i] = config.InitialValue
		}
	}
	return nil
}

func (r *arcGisAsciiRaster) FileName() string {
	return r.fileName
}

// SetFileName reads an existing ArcGIS ASCII raster file.
func (r *arcGisAsciiRaster) SetFileName(value string) error {
	r.fileName = value
	r.config = NewDefaultRasterConfig()

	if _, err := os.Stat(r.fileName); os.IsNotExist(err) {
		return FileDoesNotExistError
	}
	f, err := os.Open(r.fileName)
	if err != nil {
		return FileOpeningError
	}
	defer f.Close()

	r.minimumValue = math.MaxFloat64
	r.maximumValue = -math.MaxFloat64
	var xll, yll float64
	xllCentered, yllCentered := false, false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	cellNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		switch {
		case key == "ncols":
			if r.header.columns, err = strconv.Atoi(fields[1]); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "nrows":
			if r.header.rows, err = strconv.Atoi(fields[1]); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "xllcorner" || key == "xllcenter":
			if xll, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
			xllCentered = key == "xllcenter"
		case key == "yllcorner" || key == "yllcenter":
			if yll, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
			yllCentered = key == "yllcenter"
		case key == "cellsize":
			if r.header.cellSize, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "nodata_value":
			if r.header.nodata, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
			r.config.NoDataValue = r.header.nodata
		default:
			// a data line
			if r.data == nil {
				if r.header.rows <= 0 || r.header.columns <= 0 {
					return FileIsNotProperlyFormated
				}
				r.header.numCells = r.header.rows * r.header.columns
				r.data = make([]float64, r.header.numCells)
			}
			for _, field := range fields {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return FileIsNotProperlyFormated
				}
				if cellNum >= r.header.numCells {
					return FileIsNotProperlyFormated
				}
				r.data[cellNum] = v
				cellNum++
				if v != r.header.nodata {
					if v < r.minimumValue {
						r.minimumValue = v
					}
					if v > r.maximumValue {
						r.maximumValue = v
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return FileReadingError
	}
	if cellNum != r.header.numCells {
		return FileIsNotProperlyFormated
	}

	// derive the bounding box; xll/yll reference the lower-left cell
	// corner unless the centered keywords were used
	r.header.west = xll
	r.header.south = yll
	if xllCentered {
		r.header.west -= r.header.cellSize / 2.0
	}
	if yllCentered {
		r.header.south -= r.header.cellSize / 2.0
	}
	r.header.cellCornerMode = true
	r.header.east = r.header.west + r.header.cellSize*float64(r.header.columns)
	r.header.north = r.header.south + r.header.cellSize*float64(r.header.rows)
	return nil
}

func (r *arcGisAsciiRaster) Rows() int {
	return r.header.rows
}

func (r *arcGisAsciiRaster) Columns() int {
	return r.header.columns
}

func (r *arcGisAsciiRaster) North() float64 {
	return r.header.north
}

func (r *arcGisAsciiRaster) South() float64 {
	return r.header.south
}

func (r *arcGisAsciiRaster) East() float64 {
	return r.header.east
}

func (r *arcGisAsciiRaster) West() float64 {
	return r.header.west
}

func (r *arcGisAsciiRaster) MinimumValue() float64 {
	if r.minimumValue == math.MaxFloat64 {
		r.updateMinAndMax()
	}
	return r.minimumValue
}

func (r *arcGisAsciiRaster) MaximumValue() float64 {
	if r.maximumValue == -math.MaxFloat64 {
		r.updateMinAndMax()
	}
	return r.maximumValue
}

func (r *arcGisAsciiRaster) updateMinAndMax() {
	for _, v := range r.data {
		if v != r.header.nodata {
			if v < r.minimumValue {
				r.minimumValue = v
			}
			if v > r.maximumValue {
				r.maximumValue = v
			}
		}
	}
}

func (r *arcGisAsciiRaster) RasterType() RasterType {
	return RT_ArcGisAsciiRaster
}

func (r *arcGisAsciiRaster) NoData() float64 {
	return r.header.nodata
}

func (r *arcGisAsciiRaster) SetNoData(value float64) {
	r.header.nodata = value
	r.config.NoDataValue = value
}

func (r *arcGisAsciiRaster) Value(index int) float64 {
	return r.data[index]
}

func (r *arcGisAsciiRaster) SetValue(index int, value float64) {
	r.data[index] = value
}

func (r *arcGisAsciiRaster) Data() ([]float64, error) {
	if r.data == nil {
		return nil, FileReadingError
	}
	values := make([]float64, len(r.data))
	copy(values, r.data)
	return values, nil
}

func (r *arcGisAsciiRaster) SetData(values []float64) {
	if r.header.numCells == 0 {
		r.header.numCells = r.header.rows * r.header.columns
	}
	if len(values) == r.header.numCells {
		r.data = make([]float64, r.header.numCells)
		copy(r.data, values)
	} else {
		panic(DataSetError)
	}
}

func (r *arcGisAsciiRaster) Save() error {
	// does the file already exist? If yes, delete it.
	if _, err := os.Stat(r.fileName); err == nil {
		if err = os.Remove(r.fileName); err != nil {
			return FileDeletingError
		}
	}

	f, err := os.Create(r.fileName)
	if err != nil {
		return FileWritingError
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "NCOLS %v\n", r.header.columns)
	fmt.Fprintf(w, "NROWS %v\n", r.header.rows)
	fmt.Fprintf(w, "XLLCORNER %v\n", r.header.west)
	fmt.Fprintf(w, "YLLCORNER %v\n", r.header.south)
	fmt.Fprintf(w, "CELLSIZE %v\n", r.header.cellSize)
	fmt.Fprintf(w, "NODATA_VALUE %v\n", r.header.nodata)

	for row := 0; row < r.header.rows; row++ {
		str := ""
		for col := 0; col < r.header.columns; col++ {
			str += strconv.FormatFloat(r.data[row*r.header.columns+col], 'f', -1, 64) + " "
		}
		fmt.Fprintln(w, strings.TrimSpace(str))
	}
	if err := w.Flush(); err != nil {
		return FileWritingError
	}
	return nil
}

func (r *arcGisAsciiRaster) MetadataEntries() []string {
	return r.config.MetadataEntries
}

func (r *arcGisAsciiRaster) AddMetadataEntry(value string) {
	// the format has no metadata block; entries are carried on the config
	// for the benefit of the calling tool
	r.config.MetadataEntries = append(r.config.MetadataEntries, strings.TrimSpace(value))
}

func (r *arcGisAsciiRaster) SetRasterConfig(value *RasterConfig) {
	r.config = value
	r.header.nodata = value.NoDataValue
}

func (r *arcGisAsciiRaster) GetRasterConfig() *RasterConfig {
	return r.config
}
