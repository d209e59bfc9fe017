package history

import (
	"github.com/samber/lo"
)

// New creates a stack holding at most max items, max <= 0 means no limit.
func New[T any](max int) *History[T] {
	return &History[T]{max: max}
}

// History is a LIFO of snapshots. When full, pushing drops the oldest item.
type History[T any] struct {
	max   int
	items []T
}

func (h *History[T]) Push(item T) {
	h.items = append(h.items, item)
	if h.max > 0 && len(h.items) > h.max {
		var zero T
		h.items[0] = zero
		h.items = h.items[1:]
	}
}

// Pop removes and returns the most recent item.
func (h *History[T]) Pop() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}

	item := lo.LastOrEmpty(h.items)
	h.items[len(h.items)-1] = zero
	h.items = h.items[:len(h.items)-1]
	return item, true
}

func (h *History[T]) Peek() (T, bool) {
	return lo.LastOrEmpty(h.items), len(h.items) > 0
}

func (h *History[T]) Len() int {
	return len(h.items)
}

func (h *History[T]) Max() int {
	return h.max
}

func (h *History[T]) Reset() {
	h.items = nil
}
