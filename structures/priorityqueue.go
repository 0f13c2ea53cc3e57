// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Heap implementation based on code originally found at
// https://github.com/oleiade/lane/blob/master/pqueue.go

package structures

import "sync"

// PQType represents a priority queue ordering kind (see MAXPQ and MINPQ)
type PQType int

const (
	MAXPQ PQType = iota
	MINPQ
)

type pqitem[T any] struct {
	value    T
	priority int64
}

// PQueue is a heap priority queue data structure implementation.
// It can be whether max or min ordered, it is synchronized
// and is safe for concurrent operations.
type PQueue[T any] struct {
	sync.RWMutex
	items      []*pqitem[T]
	elemsCount int
	comparator func(int64, int64) bool
}

// NewPQueue creates a new priority queue with the provided pqtype
// ordering type
func NewPQueue[T any](pqType PQType) *PQueue[T] {
	var cmp func(int64, int64) bool

	if pqType == MAXPQ {
		cmp = func(a, b int64) bool { return a > b }
	} else {
		cmp = func(a, b int64) bool { return a < b }
	}

	items := make([]*pqitem[T], 1)
	items[0] = nil // Heap queue first element should always be nil

	return &PQueue[T]{
		items:      items,
		elemsCount: 0,
		comparator: cmp,
	}
}

// Push the value item into the priority queue with provided priority.
func (pq *PQueue[T]) Push(value T, priority int64) {
	item := &pqitem[T]{value: value, priority: priority}

	pq.Lock()
	pq.items = append(pq.items, item)
	pq.elemsCount++
	pq.swim(pq.elemsCount)
	pq.Unlock()
}

// Pop and returns the highest/lowest priority item (depending on whether
// you're using a MINPQ or MAXPQ) from the priority queue
func (pq *PQueue[T]) Pop() T {
	pq.Lock()
	defer pq.Unlock()

	if pq.elemsCount < 1 {
		var zero T
		return zero
	}

	max := pq.items[1]
	pq.exch(1, pq.elemsCount)
	pq.items = pq.items[0:pq.elemsCount]
	pq.elemsCount--
	pq.sink(1)

	return max.value
}

// Head returns the highest/lowest priority item (depending on whether
// you're using a MINPQ or MAXPQ) from the priority queue without removing it.
func (pq *PQueue[T]) Head() T {
	pq.RLock()
	defer pq.RUnlock()

	if pq.elemsCount < 1 {
		var zero T
		return zero
	}

	return pq.items[1].value
}

// Len returns the number of elements in the priority queue.
func (pq *PQueue[T]) Len() int {
	pq.RLock()
	defer pq.RUnlock()
	return pq.elemsCount
}

func (pq *PQueue[T]) less(i, j int) bool {
	return pq.comparator(pq.items[i].priority, pq.items[j].priority)
}

func (pq *PQueue[T]) exch(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *PQueue[T]) swim(k int) {
	for k > 1 && pq.less(k, k/2) {
		pq.exch(k, k/2)
		k = k / 2
	}
}

func (pq *PQueue[T]) sink(k int) {
	for 2*k <= pq.elemsCount {
		j := 2 * k
		if j < pq.elemsCount && pq.less(j+1, j) {
			j++
		}
		if !pq.less(j, k) {
			break
		}
		pq.exch(k, j)
		k = j
	}
}
