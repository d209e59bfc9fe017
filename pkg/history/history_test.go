package history

import (
	"testing"

	"go.viam.com/test"
)

func TestPushPop(t *testing.T) {
	h := New[int](0)
	_, ok := h.Pop()
	test.That(t, ok, test.ShouldBeFalse)

	for i := 1; i <= 3; i++ {
		h.Push(i)
	}
	test.That(t, h.Len(), test.ShouldEqual, 3)

	top, ok := h.Peek()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, top, test.ShouldEqual, 3)

	for want := 3; want >= 1; want-- {
		got, ok := h.Pop()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, got, test.ShouldEqual, want)
	}
	test.That(t, h.Len(), test.ShouldEqual, 0)
}

func TestMaxDropsOldest(t *testing.T) {
	h := New[string](2)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	test.That(t, h.Len(), test.ShouldEqual, 2)

	got, _ := h.Pop()
	test.That(t, got, test.ShouldEqual, "c")
	got, _ = h.Pop()
	test.That(t, got, test.ShouldEqual, "b")
	_, ok := h.Pop()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestReset(t *testing.T) {
	h := New[int](5)
	h.Push(1)
	h.Reset()
	test.That(t, h.Len(), test.ShouldEqual, 0)
	test.That(t, h.Max(), test.ShouldEqual, 5)
}
