// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package structures provides the supporting data structures used by the
// terrain analysis tools, including dense rectangular arrays and the queue
// types used by the grid traversal algorithms.
package structures

import "errors"

var ArrayLengthError = errors.New("The length of the array is not valid.")

// Create2dArray returns a 2d slice of rows x columns in a way that
// guarantees that the allocation is localized in memory.
func Create2dArray[T any](rows, columns int) [][]T {
	a := make([][]T, rows)
	e := make([]T, rows*columns)
	for i := range a {
		a[i] = e[i*columns : (i+1)*columns]
	}
	return a
}

// A rectangular shaped array (matrix) backed by a single row-major buffer.
// Reads outside the bounds of the matrix return the nodata value rather
// than failing, which simplifies neighbourhood scans along grid edges.
type RectangularArray[T any] struct {
	data          []T
	rows, columns int
	nodata        T
}

func NewRectangularArray[T any](rows, columns int, nodata T) *RectangularArray[T] {
	r := RectangularArray[T]{rows: rows, columns: columns, nodata: nodata}
	r.data = make([]T, rows*columns)
	return &r
}

// Returns the number of rows
func (r *RectangularArray[T]) GetRows() int {
	return r.rows
}

// Returns the number of columns
func (r *RectangularArray[T]) GetColumns() int {
	return r.columns
}

// Returns the nodata value
func (r *RectangularArray[T]) GetNodata() T {
	return r.nodata
}

// Sets the nodata value
func (r *RectangularArray[T]) SetNodata(value T) {
	r.nodata = value
}

// InBounds reports whether the row and column fall within the matrix.
func (r *RectangularArray[T]) InBounds(row, column int) bool {
	return column >= 0 && column < r.columns && row >= 0 && row < r.rows
}

// Retrieves an individual cell value in the matrix. Out-of-bounds reads
// return the nodata value.
func (r *RectangularArray[T]) Value(row, column int) T {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		return r.data[row*r.columns+column]
	}
	return r.nodata
}

// Sets an individual cell value in the matrix. Out-of-bounds writes are
// ignored.
func (r *RectangularArray[T]) SetValue(row, column int, value T) {
	if column >= 0 && column < r.columns && row >= 0 && row < r.rows {
		r.data[row*r.columns+column] = value
	}
}

// Returns an entire row of values.
func (r *RectangularArray[T]) GetRowData(row int) []T {
	values := make([]T, r.columns)
	if row >= 0 && row < r.rows {
		copy(values, r.data[row*r.columns:(row+1)*r.columns])
	}
	return values
}

// Sets an entire row of values.
func (r *RectangularArray[T]) SetRowData(row int, values []T) {
	if row >= 0 && row < r.rows && len(values) == r.columns {
		copy(r.data[row*r.columns:(row+1)*r.columns], values)
	}
}

// Initializes all cells with a constant value.
func (r *RectangularArray[T]) InitializeWithConstant(value T) {
	for i := range r.data {
		r.data[i] = value
	}
}

// Sets the data based on an existing array.
func (r *RectangularArray[T]) InitializeWithData(values []T) error {
	if len(values) != r.rows*r.columns {
		return ArrayLengthError
	}
	r.data = values
	return nil
}
