// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"math"
	"path/filepath"
	"strings"
)

// rasterData is the interface the format-specific codecs implement.
type rasterData interface {
	InitializeRaster(fileName string, rows int, columns int, north float64,
		south float64, east float64, west float64, config *RasterConfig) error
	FileName() string
	SetFileName(value string) error
	Rows() int
	Columns() int
	North() float64
	South() float64
	East() float64
	West() float64
	MinimumValue() float64
	MaximumValue() float64
	RasterType() RasterType
	NoData() float64
	SetNoData(value float64)
	Value(index int) float64
	SetValue(index int, value float64)
	Data() ([]float64, error)
	SetData(values []float64)
	Save() error
	MetadataEntries() []string
	AddMetadataEntry(value string)
	SetRasterConfig(value *RasterConfig)
	GetRasterConfig() *RasterConfig
}

// Raster is the front-end used to manipulate a raster file regardless of
// its underlying data format.
type Raster struct {
	Rows, Columns            int
	NumberofCells            int
	North, South, East, West float64
	NoDataValue              float64
	FileName                 string
	FileExtension            string
	RasterFormat             RasterType
	rd                       rasterData
}

// RasterConfig carries the format-independent configuration of a raster.
type RasterConfig struct {
	NoDataValue            float64
	InitialValue           float64
	RasterFormat           RasterType
	MetadataEntries        []string
	CoordinateRefSystemWKT string
	EPSGCode               int
	PreferredPalette       string
	DisplayMinimum         float64
	DisplayMaximum         float64
}

func NewDefaultRasterConfig() *RasterConfig {
	var rc RasterConfig
	rc.NoDataValue = -32768.0
	rc.InitialValue = -32768.0
	rc.RasterFormat = RT_UnknownRaster
	rc.PreferredPalette = "not specified"
	rc.DisplayMinimum = math.MaxFloat64
	rc.DisplayMaximum = -math.MaxFloat64
	rc.MetadataEntries = make([]string, 0)
	return &rc
}

// CreateNewRaster creates a raster to be written to the specified file,
// with the format determined from the file extension.
func CreateNewRaster(fileName string, rows int, columns int, north float64,
	south float64, east float64, west float64, config *RasterConfig) (*Raster, error) {

	if config == nil {
		config = NewDefaultRasterConfig()
	}
	rasterFormat := config.RasterFormat
	if rasterFormat == RT_UnknownRaster {
		var err error
		if rasterFormat, err = DetermineRasterFormat(fileName); err != nil &&
			err != MultipleRasterFormatError {
			return nil, err
		}
	}

	var rd rasterData
	switch rasterFormat {
	case RT_ArcGisAsciiRaster:
		rd = &arcGisAsciiRaster{}
	case RT_GrassAsciiRaster:
		rd = &grassAsciiRaster{}
	default:
		return nil, UnsupportedRasterFormatError
	}

	if err := rd.InitializeRaster(fileName, rows, columns, north, south,
		east, west, config); err != nil {
		return nil, RasterInitializationError
	}

	r := &Raster{rd: rd}
	setVariablesFromRasterData(r, rd)
	return r, nil
}

// CreateRasterFromFile reads an existing raster file.
func CreateRasterFromFile(fileName string) (*Raster, error) {
	rasterFormat, err := DetermineRasterFormat(fileName)
	if err != nil && err != MultipleRasterFormatError {
		return nil, err
	}

	var rd rasterData
	switch rasterFormat {
	case RT_ArcGisAsciiRaster:
		rd = &arcGisAsciiRaster{}
	case RT_GrassAsciiRaster:
		rd = &grassAsciiRaster{}
	default:
		return nil, UnsupportedRasterFormatError
	}

	if err := rd.SetFileName(fileName); err != nil {
		return nil, err
	}

	r := &Raster{rd: rd}
	setVariablesFromRasterData(r, rd)
	return r, nil
}

// Value retrieves an individual cell value in the raster. Out-of-bounds
// reads return the nodata value.
func (r *Raster) Value(row, column int) float64 {
	if column >= 0 && column < r.Columns && row >= 0 && row < r.Rows {
		return r.rd.Value(row*r.Columns + column)
	}
	return r.NoDataValue
}

// SetValue sets an individual cell value in the raster. Out-of-bounds
// writes are ignored.
func (r *Raster) SetValue(row, column int, value float64) {
	if column >= 0 && column < r.Columns && row >= 0 && row < r.Rows {
		r.rd.SetValue(row*r.Columns+column, value)
	}
}

// SetRowValues sets an entire row of cell values at once.
func (r *Raster) SetRowValues(row int, values []float64) {
	if row >= 0 && row < r.Rows && len(values) == r.Columns {
		for column, value := range values {
			r.rd.SetValue(row*r.Columns+column, value)
		}
	}
}

func (r *Raster) Data() ([]float64, error) {
	return r.rd.Data()
}

func (r *Raster) SetData(values []float64) {
	r.rd.SetData(values)
}

func (r *Raster) Save() error {
	return r.rd.Save()
}

func (r *Raster) SetRasterConfig(value *RasterConfig) {
	r.rd.SetRasterConfig(value)
}

func (r *Raster) GetRasterConfig() *RasterConfig {
	return r.rd.GetRasterConfig()
}

func (r *Raster) GetMetadataEntries() []string {
	return r.rd.MetadataEntries()
}

func (r *Raster) AddMetadataEntry(value string) {
	r.rd.AddMetadataEntry(value)
}

func (r *Raster) GetMinimumValue() float64 {
	return r.rd.MinimumValue()
}

func (r *Raster) GetMaximumValue() float64 {
	return r.rd.MaximumValue()
}

func (r *Raster) GetCellSizeX() float64 {
	return (r.East - r.West) / float64(r.Columns)
}

func (r *Raster) GetCellSizeY() float64 {
	return (r.North - r.South) / float64(r.Rows)
}

func setVariablesFromRasterData(r *Raster, rd rasterData) {
	r.FileName = rd.FileName()
	r.FileExtension = strings.ToLower(filepath.Ext(r.FileName))
	r.RasterFormat = rd.RasterType()
	r.Rows = rd.Rows()
	r.Columns = rd.Columns()
	r.NumberofCells = r.Rows * r.Columns
	r.North = rd.North()
	r.South = rd.South()
	r.East = rd.East()
	r.West = rd.West()
	r.NoDataValue = rd.NoData()
}
