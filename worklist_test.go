package presolve

import (
	"reflect"
	"testing"
)

func TestSeedAll(t *testing.T) {
	wl := SeedAll(3)
	if got, want := wl.Current(), []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Current() = %v, want %v", got, want)
	}
	if got, want := wl.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
}

func TestSeedRespectingProhibited(t *testing.T) {
	wl := SeedRespectingProhibited(4, []bool{false, true, false, true})
	if got, want := wl.Current(), []int{0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Current() = %v, want %v", got, want)
	}
}

func TestMarkChangedDedupesAndSortsAcrossSwap(t *testing.T) {
	wl := &Worklist{dirty: make([]bool, 4)}
	wl.MarkChanged(3)
	wl.MarkChanged(1)
	wl.MarkChanged(3) // duplicate, must not requeue
	wl.MarkChanged(2)

	wl.SwapBuffers()

	if got, want := wl.Current(), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Current() after swap = %v, want %v", got, want)
	}
	if got, want := wl.Len(), 3; got != want {
		t.Fatalf("Len() after swap = %d, want %d", got, want)
	}

	// MarkChanged on a previously-queued index, after its dirty bit was
	// cleared by SwapBuffers, must be allowed to queue again.
	wl.MarkChanged(3)
	wl.SwapBuffers()
	if got, want := wl.Current(), []int{3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Current() after second swap = %v, want %v", got, want)
	}
}
