package datastructure

import "errors"

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

// MinHeap is a binary heap priority queue keyed by Rank. Items must be
// unique; pos tracks each item's slot so DecreaseKey stays O(log N).
type MinHeap[T comparable] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

// heapifyUp restores the heap property from index toward the root. O(log N).
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].Rank < h.heap[h.parent(index)].Rank {
		h.heap[index], h.heap[h.parent(index)] = h.heap[h.parent(index)], h.heap[index]

		h.pos[h.heap[index].Item] = index
		h.pos[h.heap[h.parent(index)].Item] = h.parent(index)
		index = h.parent(index)
	}
}

// heapifyDown restores the heap property from index toward the leaves. O(log N).
func (h *MinHeap[T]) heapifyDown(index int) {
	smallest := index
	left := h.leftChild(index)
	right := h.rightChild(index)

	if left < len(h.heap) && h.heap[left].Rank < h.heap[smallest].Rank {
		smallest = left
	}
	if right < len(h.heap) && h.heap[right].Rank < h.heap[smallest].Rank {
		smallest = right
	}
	if smallest != index {
		h.heap[index], h.heap[smallest] = h.heap[smallest], h.heap[index]
		h.pos[h.heap[index].Item] = index
		h.pos[h.heap[smallest].Item] = smallest

		h.heapifyDown(smallest)
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]
	h.heap[0] = h.heap[h.Size()-1]
	h.heap = h.heap[:h.Size()-1]
	delete(h.pos, root.Item)
	if !h.isEmpty() {
		h.pos[h.heap[0].Item] = 0
		h.heapifyDown(0)
	}
	return root, nil
}

// DecreaseKey lowers the Rank of an item already in the heap.
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	index, ok := h.pos[item.Item]
	if !ok || item.Rank > h.heap[index].Rank {
		return errors.New("invalid item or new rank")
	}
	h.heap[index] = item
	h.heapifyUp(index)
	return nil
}

func (h *MinHeap[T]) GetItem(item T) (PriorityQueueNode[T], bool) {
	index, ok := h.pos[item]
	if !ok {
		return PriorityQueueNode[T]{}, false
	}
	return h.heap[index], true
}
