package presolve

import "golang.org/x/exp/slices"

// Worklist (C3) is a per-row or per-column "changed since last pass" queue,
// double-buffered between the pass currently running (Todo) and items
// marked dirty during that pass (nextTodo). A dirty bit per index prevents
// duplicate enqueues.
type Worklist struct {
	todo     []int
	nextTodo []int
	dirty    []bool
}

// SeedAll returns a Worklist with every index 0..n-1 queued.
func SeedAll(n int) *Worklist {
	wl := &Worklist{
		todo:  make([]int, n),
		dirty: make([]bool, n),
	}
	for i := range wl.todo {
		wl.todo[i] = i
	}
	return wl
}

// SeedRespectingProhibited returns a Worklist with every non-prohibited
// index 0..n-1 queued.
func SeedRespectingProhibited(n int, prohibited []bool) *Worklist {
	wl := &Worklist{dirty: make([]bool, n)}
	for i := 0; i < n; i++ {
		if !prohibited[i] {
			wl.todo = append(wl.todo, i)
		}
	}
	return wl
}

// MarkChanged pushes i onto the next pass's queue, unless it is already
// queued.
func (wl *Worklist) MarkChanged(i int) {
	if wl.dirty[i] {
		return
	}
	wl.dirty[i] = true
	wl.nextTodo = append(wl.nextTodo, i)
}

// SwapBuffers clears the dirty bitmap and makes the next pass's queue the
// current one.
func (wl *Worklist) SwapBuffers() {
	for _, i := range wl.nextTodo {
		wl.dirty[i] = false
	}
	wl.todo, wl.nextTodo = wl.nextTodo, wl.todo[:0]
}

// Current returns this pass's queue in a deterministic, sorted order. Rules
// themselves make no ordering promise over elements within a column/row
// (spec.md section 3), but a stable Current() order keeps diagnostics and
// test goldens reproducible.
func (wl *Worklist) Current() []int {
	out := append([]int(nil), wl.todo...)
	slices.Sort(out)
	return out
}

// Len reports the number of items queued for the current pass.
func (wl *Worklist) Len() int {
	return len(wl.todo)
}

// worklistPair bundles the row and column worklists a rule call receives.
type worklistPair struct {
	Rows *Worklist
	Cols *Worklist
}
