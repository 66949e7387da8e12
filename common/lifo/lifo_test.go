package lifo

import (
	"testing"
)

// TestPushAndPop tests LIFO ordering
func TestPushAndPop(t *testing.T) {
	stack := Stack[string]{}

	stack.Push("LDA")
	stack.Push("n")
	stack.Push("X")

	for _, want := range []string{"X", "n", "LDA"} {
		val, ok := stack.Pop()
		if !ok || val != want {
			t.Errorf("Expected %s, got %v", want, val)
		}
	}

	if _, ok := stack.Pop(); ok {
		t.Errorf("Expected empty stack, but Pop returned a value")
	}
}

// TestSlice tests that snapshots keep bottom-to-top order and do not alias
func TestSlice(t *testing.T) {
	stack := Stack[string]{}
	stack.Push("LDA")
	stack.Push("n")

	snapshot := stack.Slice()
	if len(snapshot) != 2 || snapshot[0] != "LDA" || snapshot[1] != "n" {
		t.Fatalf("Unexpected snapshot %v", snapshot)
	}

	stack.Pop()
	stack.Push("AbsAdr")
	if snapshot[1] != "n" {
		t.Errorf("Snapshot changed after stack mutation: %v", snapshot)
	}

	empty := Stack[string]{}
	if len(empty.Slice()) != 0 {
		t.Errorf("Expected empty snapshot")
	}
}
