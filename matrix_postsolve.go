package presolve

// Triple is one matrix entry (row, value) used when an action record
// snapshots or restores a column during postsolve.
type Triple struct {
	Row int
	Val float64
}

// PostsolveMatrix (C1, postsolve view) is a single column-major arena with
// an integer link array chaining the elements of each column, plus a free
// list. There is no row mirror: the matrix need not stay gap-free under
// postsolve edits, but it is initialised from a gap-free snapshot of the
// reduced problem.
type PostsolveMatrix struct {
	// ColHead[j] is the arena slot of the first element of column j, or -1
	// if the column is empty.
	ColHead []int
	Row     []int
	Val     []float64
	// Link[k] chains to the next element of the same column, or -1.
	Link []int

	freeHead int
	cap      int
}

// NewPostsolveMatrix builds a PostsolveMatrix from a gap-free column-major
// snapshot (colStart/colLen index into rowIdx/val) with n columns and m
// rows, reserving arenaCap slots total (the caller is expected to pass
// 2*nelems0 per spec.md's stated sufficient bound).
func NewPostsolveMatrix(n, m int, colStart, colLen, rowIdx []int, val []float64, arenaCap int) *PostsolveMatrix {
	nnz := 0
	for j := 0; j < n; j++ {
		nnz += colLen[j]
	}
	if arenaCap < nnz {
		arenaCap = nnz
	}
	pm := &PostsolveMatrix{
		ColHead: make([]int, n),
		Row:     make([]int, arenaCap),
		Val:     make([]float64, arenaCap),
		Link:    make([]int, arenaCap),
		cap:     arenaCap,
	}
	for j := range pm.ColHead {
		pm.ColHead[j] = -1
	}
	used := 0
	for j := 0; j < n; j++ {
		for k := colStart[j] + colLen[j] - 1; k >= colStart[j]; k-- {
			slot := used
			pm.Row[slot] = rowIdx[k]
			pm.Val[slot] = val[k]
			pm.Link[slot] = pm.ColHead[j]
			pm.ColHead[j] = slot
			used++
		}
	}
	// Build the free list out of the remaining slots.
	pm.freeHead = -1
	for k := arenaCap - 1; k >= used; k-- {
		pm.Link[k] = pm.freeHead
		pm.freeHead = k
	}
	return pm
}

func (pm *PostsolveMatrix) allocSlot() (int, error) {
	if pm.freeHead == -1 {
		return 0, ErrFreeListExhausted
	}
	slot := pm.freeHead
	pm.freeHead = pm.Link[slot]
	return slot, nil
}

func (pm *PostsolveMatrix) freeSlot(slot int) {
	pm.Link[slot] = pm.freeHead
	pm.freeHead = slot
}

// InsertElement pops a free slot and prepends (i, v) to column j's linked
// list, returning the slot index.
func (pm *PostsolveMatrix) InsertElement(j, i int, v float64) (int, error) {
	slot, err := pm.allocSlot()
	if err != nil {
		return 0, err
	}
	pm.Row[slot] = i
	pm.Val[slot] = v
	pm.Link[slot] = pm.ColHead[j]
	pm.ColHead[j] = slot
	return slot, nil
}

// DeleteColumn frees every slot currently in column j's chain and empties
// it.
func (pm *PostsolveMatrix) DeleteColumn(j int) {
	slot := pm.ColHead[j]
	for slot != -1 {
		next := pm.Link[slot]
		pm.freeSlot(slot)
		slot = next
	}
	pm.ColHead[j] = -1
}

// RestoreColumn frees column j's current chain (if any) and rebuilds it
// from entries, preserving the order given (entries[0] ends up as the new
// head after all are prepended in reverse, so entries are linked in the
// order supplied when walked from the head).
func (pm *PostsolveMatrix) RestoreColumn(j int, entries []Triple) error {
	pm.DeleteColumn(j)
	for k := len(entries) - 1; k >= 0; k-- {
		if _, err := pm.InsertElement(j, entries[k].Row, entries[k].Val); err != nil {
			return err
		}
	}
	return nil
}

// Column returns the (row, value) pairs currently linked under column j,
// in link order (most recently inserted first).
func (pm *PostsolveMatrix) Column(j int) []Triple {
	var out []Triple
	for slot := pm.ColHead[j]; slot != -1; slot = pm.Link[slot] {
		out = append(out, Triple{Row: pm.Row[slot], Val: pm.Val[slot]})
	}
	return out
}

// Guard verifies the free list plus every column chain together account
// for exactly pm.cap slots, with no slot shared between two chains. This
// is the "free-list underflow/consistency" check spec.md calls for as a
// debug-gated routine.
func (pm *PostsolveMatrix) Guard() error {
	seen := make([]bool, pm.cap)
	count := 0
	for slot := pm.freeHead; slot != -1; slot = pm.Link[slot] {
		if seen[slot] {
			return ErrFreeListExhausted
		}
		seen[slot] = true
		count++
	}
	for j := range pm.ColHead {
		for slot := pm.ColHead[j]; slot != -1; slot = pm.Link[slot] {
			if seen[slot] {
				return ErrFreeListExhausted
			}
			seen[slot] = true
			count++
		}
	}
	if count != pm.cap {
		return ErrFreeListExhausted
	}
	return nil
}

// InUse returns the number of arena slots currently claimed by some
// column (i.e. cap minus free-list length); used by tests asserting I6
// ("after postsolve, exactly nelems0 arena slots are in-use").
func (pm *PostsolveMatrix) InUse() int {
	free := 0
	for slot := pm.freeHead; slot != -1; slot = pm.Link[slot] {
		free++
	}
	return pm.cap - free
}
