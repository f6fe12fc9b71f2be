package presolve

import "gonum.org/v1/gonum/mat"

// PresolveMatrix (C1, presolve view) is a column-major matrix with a
// row-major mirror, both carrying trailing gaps so that a column or row can
// grow in place without a global compaction. A doubly-linked list threads
// columns (and, separately, rows) in their current arena order so that a
// column/row that outgrows its gap can be relocated to the end of the
// arena and re-linked.
//
// Invariant GAP: for adjacent neighbours c, next(c) in the link order,
// colStart[c]+colLen[c] <= colStart[next(c)]. The column or row currently
// at the tail of the link order has no such neighbour and may always grow
// by appending to the underlying slice.
//
// Invariant MIRROR: for every stored element (i,j,v), the same triple
// appears exactly once in the row mirror.
type PresolveMatrix struct {
	n, m int // current column/row counts (may exceed ProblemState.N/M; dropped entries just have length 0)

	ColStart, ColLen []int
	Row              []int
	Val              []float64
	clink, clinkPrev []int // doubly linked arena order; -1 terminates
	cTail            int

	RowStart, RowLen []int
	Col              []int
	RowVal           []float64
	rlink, rlinkPrev []int
	rTail            int
}

// NewPresolveMatrix builds a PresolveMatrix from a gap-free column-major
// snapshot: colStart/colLen index into rowIdx/val, n columns, m rows.
// Every column is given a trailing gap sized to its own length (bounded by
// the arena doubling below) so that one round of in-place growth never
// requires relocation; this mirrors the capacity policy spec.md cites for
// the postsolve arena (2*nelems0) applied on the presolve side too.
func NewPresolveMatrix(n, m int, colStart, colLen, rowIdx []int, val []float64) *PresolveMatrix {
	nnz := 0
	for j := 0; j < n; j++ {
		nnz += colLen[j]
	}
	pm := &PresolveMatrix{n: n, m: m}
	pm.buildColumns(n, colStart, colLen, rowIdx, val, nnz)
	pm.buildRowsFromColumns(m)
	return pm
}

// FromDense builds a PresolveMatrix from a gonum dense matrix, dropping
// exact zeros. This is the test-construction entry point mirroring
// optimize/convex/lp's own mat.NewDense(...) literal idiom.
func FromDense(a mat.Matrix) *PresolveMatrix {
	m, n := a.Dims()
	colStart := make([]int, n+1)
	var rowIdx []int
	var val []float64
	for j := 0; j < n; j++ {
		colStart[j] = len(val)
		for i := 0; i < m; i++ {
			v := a.At(i, j)
			if v == 0 {
				continue
			}
			rowIdx = append(rowIdx, i)
			val = append(val, v)
		}
	}
	colStart[n] = len(val)
	colLen := make([]int, n)
	for j := 0; j < n; j++ {
		colLen[j] = colStart[j+1] - colStart[j]
	}
	return NewPresolveMatrix(n, m, colStart[:n], colLen, rowIdx, val)
}

func (pm *PresolveMatrix) buildColumns(n int, colStart, colLen, rowIdx []int, val []float64, nnz int) {
	arenaCap := 2*nnz + n + 1
	pm.ColStart = make([]int, n)
	pm.ColLen = make([]int, n)
	pm.Row = make([]int, 0, arenaCap)
	pm.Val = make([]float64, 0, arenaCap)
	pm.clink = make([]int, n)
	pm.clinkPrev = make([]int, n)
	pos := 0
	for j := 0; j < n; j++ {
		pm.ColStart[j] = pos
		pm.ColLen[j] = colLen[j]
		for k := colStart[j]; k < colStart[j]+colLen[j]; k++ {
			pm.Row = append(pm.Row, rowIdx[k])
			pm.Val = append(pm.Val, val[k])
		}
		pos += colLen[j]
		// trailing gap, skipped over in the arena but reserved by
		// appending placeholder slots.
		gap := colLen[j]
		for g := 0; g < gap; g++ {
			pm.Row = append(pm.Row, -1)
			pm.Val = append(pm.Val, 0)
		}
		pos += gap
		if j > 0 {
			pm.clink[j-1] = j
			pm.clinkPrev[j] = j - 1
		}
	}
	if n > 0 {
		pm.clink[n-1] = -1
		pm.clinkPrev[0] = -1
		pm.cTail = n - 1
	} else {
		pm.cTail = -1
	}
}

func (pm *PresolveMatrix) buildRowsFromColumns(m int) {
	rowLen := make([]int, m)
	for j := 0; j < pm.n; j++ {
		for k := pm.ColStart[j]; k < pm.ColStart[j]+pm.ColLen[j]; k++ {
			rowLen[pm.Row[k]]++
		}
	}
	nnz := 0
	for i := 0; i < m; i++ {
		nnz += rowLen[i]
	}
	capTotal := 2*nnz + m + 1
	pm.RowStart = make([]int, m)
	pm.RowLen = make([]int, m)
	pm.Col = make([]int, capTotal)
	pm.RowVal = make([]float64, capTotal)
	pm.rlink = make([]int, m)
	pm.rlinkPrev = make([]int, m)

	pos := 0
	fill := make([]int, m) // next write offset within row i's span, relative
	for i := 0; i < m; i++ {
		pm.RowStart[i] = pos
		pm.RowLen[i] = rowLen[i]
		pos += rowLen[i]
		gap := rowLen[i]
		pos += gap
		if i > 0 {
			pm.rlink[i-1] = i
			pm.rlinkPrev[i] = i - 1
		}
	}
	if m > 0 {
		pm.rlink[m-1] = -1
		pm.rlinkPrev[0] = -1
		pm.rTail = m - 1
	} else {
		pm.rTail = -1
	}
	for i := range pm.Col {
		pm.Col[i] = -1
	}
	for j := 0; j < pm.n; j++ {
		for k := pm.ColStart[j]; k < pm.ColStart[j]+pm.ColLen[j]; k++ {
			i := pm.Row[k]
			slot := pm.RowStart[i] + fill[i]
			pm.Col[slot] = j
			pm.RowVal[slot] = pm.Val[k]
			fill[i]++
		}
	}
}

// Dims returns the current row and column counts, mirroring gonum's
// mat.Matrix convention so callers (e.g. report.SparsityPlot) can treat a
// PresolveMatrix like any other dimensioned matrix type.
func (pm *PresolveMatrix) Dims() (rows, cols int) {
	return pm.m, pm.n
}

// Column returns a live view of column j's stored (row, value) pairs.
// Callers must not retain the slices across a mutating call.
func (pm *PresolveMatrix) Column(j int) (rows []int, vals []float64) {
	s, l := pm.ColStart[j], pm.ColLen[j]
	return pm.Row[s : s+l], pm.Val[s : s+l]
}

// RowEntries returns a live view of row i's stored (column, value) pairs.
func (pm *PresolveMatrix) RowEntries(i int) (cols []int, vals []float64) {
	s, l := pm.RowStart[i], pm.RowLen[i]
	return pm.Col[s : s+l], pm.RowVal[s : s+l]
}

func findInSpan(idx []int, start, length, target int) (slot int, ok bool) {
	for k := start; k < start+length; k++ {
		if idx[k] == target {
			return k, true
		}
	}
	return 0, false
}

// DeleteElement removes (i,j) from both mirrors, if present. Deletion is
// in-place: the entry is swapped with the span's last entry and the span
// shrinks by one.
func (pm *PresolveMatrix) DeleteElement(i, j int) {
	if slot, ok := findInSpan(pm.Row, pm.ColStart[j], pm.ColLen[j], i); ok {
		last := pm.ColStart[j] + pm.ColLen[j] - 1
		pm.Row[slot], pm.Val[slot] = pm.Row[last], pm.Val[last]
		pm.Row[last], pm.Val[last] = -1, 0
		pm.ColLen[j]--
	}
	if slot, ok := findInSpan(pm.Col, pm.RowStart[i], pm.RowLen[i], j); ok {
		last := pm.RowStart[i] + pm.RowLen[i] - 1
		pm.Col[slot], pm.RowVal[slot] = pm.Col[last], pm.RowVal[last]
		pm.Col[last], pm.RowVal[last] = -1, 0
		pm.RowLen[i]--
	}
}

// DeleteColumn removes every element of column j from both mirrors,
// unlinks j from the column arena order, and zeros its length.
func (pm *PresolveMatrix) DeleteColumn(j int) {
	rows, _ := pm.Column(j)
	rowsCopy := append([]int(nil), rows...)
	for _, i := range rowsCopy {
		pm.DeleteElement(i, j)
	}
	pm.ColLen[j] = 0
	pm.unlinkColumn(j)
}

// DeleteRow removes every element of row i from both mirrors, unlinks i
// from the row arena order, and zeros its length.
func (pm *PresolveMatrix) DeleteRow(i int) {
	cols, _ := pm.RowEntries(i)
	colsCopy := append([]int(nil), cols...)
	for _, j := range colsCopy {
		pm.DeleteElement(i, j)
	}
	pm.RowLen[i] = 0
	pm.unlinkRow(i)
}

func (pm *PresolveMatrix) unlinkColumn(j int) {
	prev, next := pm.clinkPrev[j], pm.clink[j]
	if prev != -1 {
		pm.clink[prev] = next
	}
	if next != -1 {
		pm.clinkPrev[next] = prev
	}
	if pm.cTail == j {
		pm.cTail = prev
	}
}

func (pm *PresolveMatrix) unlinkRow(i int) {
	prev, next := pm.rlinkPrev[i], pm.rlink[i]
	if prev != -1 {
		pm.rlink[prev] = next
	}
	if next != -1 {
		pm.rlinkPrev[next] = prev
	}
	if pm.rTail == i {
		pm.rTail = prev
	}
}

// ScaleColumn multiplies every stored value in column j by alpha, keeping
// the row mirror consistent.
func (pm *PresolveMatrix) ScaleColumn(j int, alpha float64) {
	s, l := pm.ColStart[j], pm.ColLen[j]
	for k := s; k < s+l; k++ {
		pm.Val[k] *= alpha
		i := pm.Row[k]
		if slot, ok := findInSpan(pm.Col, pm.RowStart[i], pm.RowLen[i], j); ok {
			pm.RowVal[slot] = pm.Val[k]
		}
	}
}

// ScaleRow multiplies every stored value in row i by alpha, keeping the
// column mirror consistent.
func (pm *PresolveMatrix) ScaleRow(i int, alpha float64) {
	s, l := pm.RowStart[i], pm.RowLen[i]
	for k := s; k < s+l; k++ {
		pm.RowVal[k] *= alpha
		j := pm.Col[k]
		if slot, ok := findInSpan(pm.Row, pm.ColStart[j], pm.ColLen[j], i); ok {
			pm.Val[slot] = pm.RowVal[k]
		}
	}
}

// relocateColumn moves column j's entries to the end of the column arena
// and re-links it as the new tail, giving it unbounded room to grow.
func (pm *PresolveMatrix) relocateColumn(j int) {
	rows, vals := pm.Column(j)
	rowsCopy := append([]int(nil), rows...)
	valsCopy := append([]float64(nil), vals...)
	newStart := len(pm.Row)
	pm.Row = append(pm.Row, rowsCopy...)
	pm.Val = append(pm.Val, valsCopy...)
	pm.unlinkColumn(j)
	pm.ColStart[j] = newStart
	pm.clinkPrev[j] = pm.cTail
	pm.clink[j] = -1
	if pm.cTail != -1 {
		pm.clink[pm.cTail] = j
	}
	pm.cTail = j
}

// relocateRow is the row analogue of relocateColumn.
func (pm *PresolveMatrix) relocateRow(i int) {
	cols, vals := pm.RowEntries(i)
	colsCopy := append([]int(nil), cols...)
	valsCopy := append([]float64(nil), vals...)
	newStart := len(pm.Col)
	pm.Col = append(pm.Col, colsCopy...)
	pm.RowVal = append(pm.RowVal, valsCopy...)
	pm.unlinkRow(i)
	pm.RowStart[i] = newStart
	pm.rlinkPrev[i] = pm.rTail
	pm.rlink[i] = -1
	if pm.rTail != -1 {
		pm.rlink[pm.rTail] = i
	}
	pm.rTail = i
}

func (pm *PresolveMatrix) hasColumnGap(j int) bool {
	if j == pm.cTail {
		return true
	}
	next := pm.clink[j]
	return pm.ColStart[j]+pm.ColLen[j] < pm.ColStart[next]
}

func (pm *PresolveMatrix) hasRowGap(i int) bool {
	if i == pm.rTail {
		return true
	}
	next := pm.rlink[i]
	return pm.RowStart[i]+pm.RowLen[i] < pm.RowStart[next]
}

func (pm *PresolveMatrix) insertColumnEntry(j, i int, v float64) {
	if !pm.hasColumnGap(j) {
		pm.relocateColumn(j)
	}
	slot := pm.ColStart[j] + pm.ColLen[j]
	if slot == len(pm.Row) {
		pm.Row = append(pm.Row, i)
		pm.Val = append(pm.Val, v)
	} else {
		pm.Row[slot] = i
		pm.Val[slot] = v
	}
	pm.ColLen[j]++
}

func (pm *PresolveMatrix) insertRowEntry(i, j int, v float64) {
	if !pm.hasRowGap(i) {
		pm.relocateRow(i)
	}
	slot := pm.RowStart[i] + pm.RowLen[i]
	if slot == len(pm.Col) {
		pm.Col = append(pm.Col, j)
		pm.RowVal = append(pm.RowVal, v)
	} else {
		pm.Col[slot] = j
		pm.RowVal[slot] = v
	}
	pm.RowLen[i]++
}

// AddRowMultiple is the fundamental substitution primitive: row r2 <- row
// r2 + alpha*row r1. Entries that fall to magnitude <= dropTol after the
// update are removed from both mirrors. Returns an error only for an
// internal invariant violation; infeasibility/unboundedness is never
// detected here.
func (pm *PresolveMatrix) AddRowMultiple(r1, r2 int, alpha, dropTol float64) error {
	if alpha == 0 {
		return nil
	}
	cols, vals := pm.RowEntries(r1)
	colsCopy := append([]int(nil), cols...)
	valsCopy := append([]float64(nil), vals...)
	for idx, j := range colsCopy {
		delta := alpha * valsCopy[idx]
		if slot, ok := findInSpan(pm.Col, pm.RowStart[r2], pm.RowLen[r2], j); ok {
			newVal := pm.RowVal[slot] + delta
			if abs(newVal) <= dropTol {
				pm.DeleteElement(r2, j)
			} else {
				pm.RowVal[slot] = newVal
				if cslot, ok := findInSpan(pm.Row, pm.ColStart[j], pm.ColLen[j], r2); ok {
					pm.Val[cslot] = newVal
				}
			}
			continue
		}
		if abs(delta) <= dropTol {
			continue
		}
		pm.insertRowEntry(r2, j, delta)
		pm.insertColumnEntry(j, r2, delta)
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// CheckInvariants verifies GAP and MIRROR (spec.md I1/I2). It is O(elements).
// The engine itself never calls it; tests call it directly.
func (pm *PresolveMatrix) CheckInvariants() error {
	for j := 0; j < pm.n; j++ {
		if j == pm.cTail {
			continue
		}
		next := pm.clink[j]
		if next == -1 {
			continue
		}
		if pm.ColStart[j]+pm.ColLen[j] > pm.ColStart[next] {
			return ErrGapViolation
		}
	}
	for i := 0; i < pm.m; i++ {
		if i == pm.rTail {
			continue
		}
		next := pm.rlink[i]
		if next == -1 {
			continue
		}
		if pm.RowStart[i]+pm.RowLen[i] > pm.RowStart[next] {
			return ErrGapViolation
		}
	}
	for j := 0; j < pm.n; j++ {
		rows, vals := pm.Column(j)
		for k, i := range rows {
			slot, ok := findInSpan(pm.Col, pm.RowStart[i], pm.RowLen[i], j)
			if !ok || pm.RowVal[slot] != vals[k] {
				return ErrMirrorMismatch
			}
		}
	}
	return nil
}
