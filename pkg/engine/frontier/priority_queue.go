package frontier

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty returned by ExtractMin/GetMin on an empty heap.
	ErrEmpty = errors.New("frontier: heap is empty")
	// ErrNotFound returned by Remove when the item is not in the heap.
	ErrNotFound = errors.New("frontier: item not found in the heap")
	// ErrDuplicate returned by Insert when the item is already queued.
	ErrDuplicate = errors.New("frontier: item already in the heap")
	// ErrAllocation returned by Insert when the heap is at its capacity.
	ErrAllocation = errors.New("frontier: capacity exhausted")
)

type PriorityQueueNode[T comparable] struct {
	Rank int
	Item T
	seq  uint64 // urutan insert, buat tie-break yang stabil
}

// MinHeap binary heap priorityqueue. Ordered by Rank ascending, equal ranks by insertion order.
// pos maps every queued item to its slot so Contains/Find/Remove do not scan.
type MinHeap[T comparable] struct {
	heap     []PriorityQueueNode[T]
	pos      map[T]int
	nextSeq  uint64
	capacity int
}

// NewMinHeap bikin heap kosong. capacity <= 0 berarti tidak dibatasi.
func NewMinHeap[T comparable](capacity int) *MinHeap[T] {
	return &MinHeap[T]{
		heap:     make([]PriorityQueueNode[T], 0),
		pos:      make(map[T]int),
		capacity: capacity,
	}
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

// leftChild get index dari left child
func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

// rightChild get index dari right child
func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].Rank != h.heap[j].Rank {
		return h.heap[i].Rank < h.heap[j].Rank
	}
	return h.heap[i].seq < h.heap[j].seq
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp mempertahankan heap property. check apakah parent dari index lebih besar kalau iya swap. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown mempertahankan heap property. check apakah salah satu children dari index lebih kecil kalau iya swap. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.less(left, smallest) {
			smallest = left
		}
		if right < len(h.heap) && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

// isEmpty check apakah heap kosong
func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

// Size ukuran heap
func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// GetMin mendapatkan nilai minimum dari min-heap (index 0) tanpa pop.
func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrEmpty
	}
	return h.heap[0], nil
}

// Insert item baru dengan rank. O(logN).
func (h *MinHeap[T]) Insert(item T, rank int) error {
	if _, ok := h.pos[item]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicate, item)
	}
	if h.capacity > 0 && len(h.heap) >= h.capacity {
		return fmt.Errorf("%w: %d entries", ErrAllocation, h.capacity)
	}
	h.heap = append(h.heap, PriorityQueueNode[T]{Rank: rank, Item: item, seq: h.nextSeq})
	h.nextSeq++
	index := h.Size() - 1
	h.pos[item] = index
	h.heapifyUp(index)
	return nil
}

// ExtractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN)
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrEmpty
	}
	root := h.heap[0]
	h.removeAt(0)
	return root, nil
}

// Contains membership test.
func (h *MinHeap[T]) Contains(item T) bool {
	_, ok := h.pos[item]
	return ok
}

// Find returns the queued node of item.
func (h *MinHeap[T]) Find(item T) (PriorityQueueNode[T], bool) {
	idx, ok := h.pos[item]
	if !ok {
		return PriorityQueueNode[T]{}, false
	}
	return h.heap[idx], true
}

// Remove delete node specific. O(logN), slot dari pos map.
func (h *MinHeap[T]) Remove(item T) error {
	idx, ok := h.pos[item]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, item)
	}
	h.removeAt(idx)
	return nil
}

// removeAt replace node di index dengan elemen terakhir, lalu restore heap property.
func (h *MinHeap[T]) removeAt(index int) {
	last := h.Size() - 1
	removed := h.heap[index].Item
	if index != last {
		h.swap(index, last)
	}
	h.heap = h.heap[:last]
	delete(h.pos, removed)

	if index < len(h.heap) {
		h.heapifyUp(index)
		h.heapifyDown(index)
	}
}

// Items returns the queued nodes in heap order (not sorted), buat debug log.
func (h *MinHeap[T]) Items() []PriorityQueueNode[T] {
	return append([]PriorityQueueNode[T](nil), h.heap...)
}
