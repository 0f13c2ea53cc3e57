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

// Used to manipulate a GRASS GIS ASCII raster file.
type grassAsciiRaster struct {
	fileName     string
	data         []float64
	header       grassAsciiRasterHeader
	minimumValue float64
	maximumValue float64
	config       *RasterConfig
}

type grassAsciiRasterHeader struct {
	rows     int
	columns  int
	numCells int
	north    float64
	south    float64
	east     float64
	west     float64
	nodata   float64
}

func (r *grassAsciiRaster) InitializeRaster(fileName string,
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

func (r *grassAsciiRaster) FileName() string {
	return r.fileName
}

// SetFileName reads an existing GRASS ASCII raster file.
func (r *grassAsciiRaster) SetFileName(value string) error {
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
	r.header.nodata = -9999.0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	cellNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		fields := strings.Fields(strings.Replace(line, ":", " ", 1))
		key := strings.ToLower(fields[0])
		switch {
		case key == "north" && len(fields) > 1 && r.data == nil:
			if r.header.north, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "south" && len(fields) > 1 && r.data == nil:
			if r.header.south, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "east" && len(fields) > 1 && r.data == nil:
			if r.header.east, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "west" && len(fields) > 1 && r.data == nil:
			if r.header.west, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "rows" && len(fields) > 1 && r.data == nil:
			if r.header.rows, err = strconv.Atoi(fields[1]); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "cols" && len(fields) > 1 && r.data == nil:
			if r.header.columns, err = strconv.Atoi(fields[1]); err != nil {
				return FileIsNotProperlyFormated
			}
		case key == "null" && len(fields) > 1 && r.data == nil:
			if r.header.nodata, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return FileIsNotProperlyFormated
			}
		default:
			// a data line
			if r.data == nil {
				if r.header.rows <= 0 || r.header.columns <= 0 {
					return FileIsNotProperlyFormated
				}
				r.header.numCells = r.header.rows * r.header.columns
				r.data = make([]float64, r.header.numCells)
				r.config.NoDataValue = r.header.nodata
			}
			for _, field := range strings.Fields(line) {
				var v float64
				if field == "*" {
					v = r.header.nodata
				} else if v, err = strconv.ParseFloat(field, 64); err != nil {
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
	return nil
}

func (r *grassAsciiRaster) Rows() int {
	return r.header.rows
}

func (r *grassAsciiRaster) Columns() int {
	return r.header.columns
}

func (r *grassAsciiRaster) North() float64 {
	return r.header.north
}

func (r *grassAsciiRaster) South() float64 {
	return r.header.south
}

func (r *grassAsciiRaster) East() float64 {
	return r.header.east
}

func (r *grassAsciiRaster) West() float64 {
	return r.header.west
}

func (r *grassAsciiRaster) MinimumValue() float64 {
	if r.minimumValue == math.MaxFloat64 {
		r.updateMinAndMax()
	}
	return r.minimumValue
}

func (r *grassAsciiRaster) MaximumValue() float64 {
	if r.maximumValue == -math.MaxFloat64 {
		r.updateMinAndMax()
	}
	return r.maximumValue
}

func (r *grassAsciiRaster) updateMinAndMax() {
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

func (r *grassAsciiRaster) RasterType() RasterType {
	return RT_GrassAsciiRaster
}

func (r *grassAsciiRaster) NoData() float64 {
	return r.header.nodata
}

func (r *grassAsciiRaster) SetNoData(value float64) {
	r.header.nodata = value
	r.config.NoDataValue = value
}

func (r *grassAsciiRaster) Value(index int) float64 {
	return r.data[index]
}

func (r *grassAsciiRaster) SetValue(index int, value float64) {
	r.data[index] = value
}

func (r *grassAsciiRaster) Data() ([]float64, error) {
	if r.data == nil {
		return nil, FileReadingError
	}
	values := make([]float64, len(r.data))
	copy(values, r.data)
	return values, nil
}

func (r *grassAsciiRaster) SetData(values []float64) {
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

func (r *grassAsciiRaster) Save() error {
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
	fmt.Fprintf(w, "north: %v\n", r.header.north)
	fmt.Fprintf(w, "south: %v\n", r.header.south)
	fmt.Fprintf(w, "east: %v\n", r.header.east)
	fmt.Fprintf(w, "west: %v\n", r.header.west)
	fmt.Fprintf(w, "rows: %v\n", r.header.rows)
	fmt.Fprintf(w, "cols: %v\n", r.header.columns)
	fmt.Fprintf(w, "null: %v\n", r.header.nodata)

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

func (r *grassAsciiRaster) MetadataEntries() []string {
	return r.config.MetadataEntries
}

func (r *grassAsciiRaster) AddMetadataEntry(value string) {
	r.config.MetadataEntries = append(r.config.MetadataEntries, strings.TrimSpace(value))
}

func (r *grassAsciiRaster) SetRasterConfig(value *RasterConfig) {
	r.config = value
	r.header.nodata = value.NoDataValue
}

func (r *grassAsciiRaster) GetRasterConfig() *RasterConfig {
	return r.config
}
