// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package structures

// GridCell identifies a single raster cell by row and column.
type GridCell struct {
	Row    int
	Column int
}

type cellQueueNode struct {
	cell         GridCell
	advanceLayer bool
	next         *cellQueueNode
}

// CellQueue is a FIFO (first in first out) queue of grid cells. In addition
// to ordinary cell entries it supports layer-marker entries, which let a
// breadth-first traversal track its distance from the seed cells with a
// single queue: when the marker is dequeued the traversal advances its
// layer counter and re-enqueues the marker.
type CellQueue struct {
	head  *cellQueueNode
	tail  *cellQueueNode
	count int
}

// Creates a new pointer to a new queue.
func NewCellQueue() *CellQueue {
	return &CellQueue{}
}

// Returns the number of entries in the queue, layer markers included.
func (q *CellQueue) Len() int {
	return q.count
}

// Pushes/inserts a cell at the end/tail of the queue.
func (q *CellQueue) Push(cell GridCell) {
	q.append(&cellQueueNode{cell: cell})
}

// Pushes a layer-marker entry at the end/tail of the queue.
func (q *CellQueue) PushLayerMarker() {
	q.append(&cellQueueNode{advanceLayer: true})
}

func (q *CellQueue) append(n *cellQueueNode) {
	if q.count > 0 {
		q.tail.next = n
		q.tail = n
	} else {
		q.tail = n
		q.head = n
	}
	q.count++
}

// Returns the entry at the front of the queue, i.e. the oldest entry in the
// queue. The second return value is true when the entry is a layer marker,
// in which case the cell value is meaningless.
func (q *CellQueue) Pop() (GridCell, bool) {
	n := q.head
	q.head = n.next

	if q.head == nil {
		q.tail = nil
	}
	q.count--

	return n.cell, n.advanceLayer
}
