package presolve

import (
	"golang.org/x/sync/semaphore"
)

// Stats summarises one presolve run for the caller and for
// MsgPresolveSummary, mirroring OsiPresolve's end-of-run log line (rows,
// columns, elements before and after).
type Stats struct {
	RowsBefore, RowsAfter         int
	ColsBefore, ColsAfter         int
	ElementsBefore, ElementsAfter int
	IntegerBoundsModified         int
}

// Presolve (C8) is the top-level orchestrator: it owns the snapshot taken
// from the caller's original problem, drives the reduction pipeline,
// handles the integer round-trip restart, and later drives postsolve back
// onto the original. One Presolve value is meant to be reused across a
// branch-and-bound tree's repeated presolve/postsolve cycles, which is why
// it guards re-entrancy rather than assuming single-shot use.
type Presolve struct {
	Settings Settings
	Handler  MessageHandler

	sem *semaphore.Weighted

	original Problem
	reduced  Problem
	ps       *ProblemState
	log      *Log
	colNew   []int
	rowNew   []int

	Stats Stats
}

// New returns a Presolve configured with settings. The zero value of
// Presolve is not usable; always construct through New.
func New(settings Settings) *Presolve {
	return &Presolve{
		Settings: settings,
		sem:      semaphore.NewWeighted(1),
	}
}

// PresolvedModel (C8) clones problem, runs the reduction pipeline to a
// fixed point (restarting across the integer round-trip when tightened
// integer bounds must be pushed back to the original model), and returns
// the reduced problem the caller should hand to its solver. A nil Problem
// with a nil error means the model was proved infeasible or unbounded;
// that outcome is reported through problem's own SetProblemStatus, not
// through the returned error. A non-nil error is reserved for a
// configuration or internal failure (see errors.go).
func (p *Presolve) PresolvedModel(problem Problem) (Problem, error) {
	if !p.sem.TryAcquire(1) {
		return nil, ErrAlreadyRunning
	}
	defer p.sem.Release(1)

	ztolzb, err := problem.PrimalTolerance()
	if err != nil {
		return nil, ErrMissingTolerance
	}
	ztoldj, err := problem.DualTolerance()
	if err != nil {
		return nil, ErrMissingTolerance
	}
	if p.Settings.FeasibilityTolerance != 0 {
		ztolzb = p.Settings.FeasibilityTolerance
	}
	if p.Settings.DualTolerance != 0 {
		ztoldj = p.Settings.DualTolerance
	}

	work := problem.Clone()
	if !p.Settings.KeepIntegers {
		for j := 0; j < work.NumCols(); j++ {
			work.SetInteger(j, false)
		}
	}

	p.Stats = Stats{
		RowsBefore: problem.NumRows(), ColsBefore: problem.NumCols(),
		ElementsBefore: problem.NumElements(),
	}

	var ps *ProblemState
	var pm *PresolveMatrix
	var log *Log

	for {
		ps, pm, log = buildPresolveState(work, ztolzb, ztoldj)

		if !checkColumnBounds(ps) {
			ps.Status = StatusInfeasible
			p.emit(MsgColInfeasible)
			p.emitTerminal(ps.Status)
			problem.SetProblemStatus(ps.Status)
			return nil, nil
		}

		// The integer round-trip must run on every surviving integer
		// column's original bounds before the reduction pipeline gets a
		// chance to eliminate that column (e.g. as an empty column or row):
		// once eliminated, the rule that dropped it commits a final value
		// computed from whatever bounds it saw, and a not-yet-snapped bound
		// like [0.3,2.7] would commit a non-integral value that never gets
		// a second look. Snapping first, and restarting from a freshly
		// built state when anything moved, keeps every value the pipeline
		// ever reads already integer-feasible.
		tightened, infeasible := snapIntegerBounds(ps)
		if infeasible {
			ps.Status = StatusInfeasible
			p.emitTerminal(ps.Status)
			problem.SetProblemStatus(ps.Status)
			return nil, nil
		}
		if tightened > 0 {
			p.Stats.IntegerBoundsModified += tightened
			p.emit(MsgIntegerBoundsModified, tightened)
			pushIntegerBoundsToOriginal(ps, work)
			pushIntegerBoundsToOriginal(ps, problem)
			continue
		}

		p.applyNonLinearProhibition(ps, pm, work)

		doDualStuff := p.Settings.NumberPasses > 0 && !anyInteger(ps)
		for j := 0; j < problem.NumCols() && doDualStuff; j++ {
			if problem.IsInteger(j) {
				doDualStuff = false
			}
		}
		runPipeline(ps, pm, log, p.Settings.NumberPasses, doDualStuff)
		if !ps.Status.Terminal() && !checkColumnBounds(ps) {
			ps.Status = StatusInfeasible
			p.emit(MsgColInfeasible)
		}

		if ps.Status.Terminal() {
			p.emitTerminal(ps.Status)
			problem.SetProblemStatus(ps.Status)
			return nil, nil
		}
		break
	}

	colNew, rowNew := ps.Compact()
	reduced := extractReducedProblem(work, ps, pm, colNew, rowNew)

	p.original = problem
	p.reduced = reduced
	p.ps = ps
	p.log = log
	p.colNew = colNew
	p.rowNew = rowNew

	p.Stats.RowsAfter = ps.M
	p.Stats.ColsAfter = ps.N
	p.Stats.ElementsAfter = countElements(pm, ps)
	p.emit(MsgPresolveSummary, p.Stats)

	return reduced, nil
}

// Postsolve (C7) expands the solved reduced problem's solution back onto
// the original problem supplied to PresolvedModel (or since overridden by
// SetOriginalModel), walking the action log newest-first. If updateStatus
// is set, it also writes back a basis of size (n0, m0) and the problem
// status; otherwise only the primal/dual/activity vectors are updated.
func (p *Presolve) Postsolve(updateStatus bool) error {
	if p.ps == nil || p.log == nil {
		return ErrPostsolveBeforePresolve
	}
	if p.original == nil || p.reduced == nil {
		return ErrNoReducedProblem
	}

	st, err := buildPostsolveState(p.ps, p.reduced, p.colNew, p.rowNew)
	if err != nil {
		return err
	}
	if err := runPostsolve(p.log, st); err != nil {
		return err
	}
	if p.Settings.Debug {
		if err := st.Matrix.Guard(); err != nil {
			return err
		}
	}

	writeBack(p.original, st, updateStatus, p.ps.Status)
	return nil
}

// OriginalColumns returns originalColumn[j], the original index of each
// surviving reduced-problem column, in reduced-index order.
func (p *Presolve) OriginalColumns() []int {
	if p.ps == nil {
		return nil
	}
	return p.ps.OriginalColumn
}

// OriginalRows returns originalRow[i], the original index of each
// surviving reduced-problem row, in reduced-index order.
func (p *Presolve) OriginalRows() []int {
	if p.ps == nil {
		return nil
	}
	return p.ps.OriginalRow
}

// SetOriginalModel re-points the "original" problem Postsolve writes back
// to, without resetting the action log -- used when the caller has swapped
// in a fresh model object of identical dimensions (e.g. after cloning it
// for a branch-and-bound node). Dimensions must match the model the action
// log was built against, or ErrDimensionMismatch is returned.
func (p *Presolve) SetOriginalModel(problem Problem) error {
	if p.ps == nil {
		return ErrPostsolveBeforePresolve
	}
	if problem.NumCols() != p.ps.N0 || problem.NumRows() != p.ps.M0 {
		return ErrDimensionMismatch
	}
	p.original = problem
	return nil
}

func (p *Presolve) emitTerminal(status Status) {
	switch status {
	case StatusInfeasible:
		p.emit(MsgPrimalInfeasible)
	case StatusUnbounded:
		p.emit(MsgUnbounded)
	case StatusBoth:
		p.emit(MsgBoth)
	}
}

// buildPresolveState loads work's matrix and bounds into a fresh
// ProblemState/PresolveMatrix/Log triple.
func buildPresolveState(work Problem, ztolzb, ztoldj float64) (*ProblemState, *PresolveMatrix, *Log) {
	n, m, nelems := work.NumCols(), work.NumRows(), work.NumElements()
	ps := NewProblemState(n, m, nelems, work.ObjSense(), ztolzb, ztoldj)
	copy(ps.CLo, work.ColLower())
	copy(ps.CUp, work.ColUpper())
	copy(ps.Cost, work.ObjCoefficients())
	copy(ps.RLo, work.RowLower())
	copy(ps.RUp, work.RowUpper())
	for j := 0; j < n; j++ {
		ps.Integer[j] = work.IsInteger(j)
	}

	colStart, colLen, rowIdx, val := work.MatrixByCol()
	pm := NewPresolveMatrix(n, m, colStart, colLen, rowIdx, val)

	return ps, pm, NewLog()
}

// applyNonLinearProhibition marks every row and column touching a
// coefficient (matrix or objective) exactly equal to Settings.NonLinearValue
// as prohibited, per spec.md section 6's "hook for mixed nonlinear
// problems". Zero disables the check.
func (p *Presolve) applyNonLinearProhibition(ps *ProblemState, pm *PresolveMatrix, work Problem) {
	v := p.Settings.NonLinearValue
	if v == 0 {
		return
	}
	for j := 0; j < ps.N0; j++ {
		if ps.Cost[j] == v {
			ps.ColProhibited[j] = true
		}
		rows, vals := pm.Column(j)
		for k, i := range rows {
			if vals[k] == v {
				ps.ColProhibited[j] = true
				ps.RowProhibited[i] = true
			}
		}
	}
}

func anyInteger(ps *ProblemState) bool {
	for j := 0; j < ps.N0; j++ {
		if !ps.ColDropped[j] && ps.Integer[j] {
			return true
		}
	}
	return false
}

// snapIntegerBounds (C8 integer round-trip) rounds every surviving integer
// column's lower bound up and upper bound down to the nearest integer
// within IntegerSnapTolerance, returning how many columns were tightened
// and whether any became infeasible by more than
// IntegerInfeasibilityThreshold.
func snapIntegerBounds(ps *ProblemState) (tightened int, infeasible bool) {
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] || !ps.Integer[j] {
			continue
		}
		lo, up := ps.CLo[j], ps.CUp[j]
		if abs(lo) >= PresolveInf || abs(up) >= PresolveInf {
			continue
		}
		newLo := roundUp(lo, IntegerSnapTolerance)
		newUp := roundDown(up, IntegerSnapTolerance)
		if newLo-up > IntegerInfeasibilityThreshold || lo-newUp > IntegerInfeasibilityThreshold {
			return tightened, true
		}
		if newLo > newUp {
			if newLo-newUp <= IntegerInfeasibilityThreshold {
				newUp = newLo
			} else {
				return tightened, true
			}
		}
		if newLo != lo || newUp != up {
			ps.CLo[j], ps.CUp[j] = newLo, newUp
			tightened++
		}
	}
	return tightened, false
}

// checkColumnBounds enforces spec.md's boundary case for a column's own
// explicit bounds: a crossing of at most IntegerInfeasibilityThreshold is
// floating-point noise and is snapped to a single point rather than failed;
// anything wider is reported infeasible. This runs once per presolve
// attempt (including each integer round-trip restart), ahead of the
// reduction rules, since a model can arrive already crossed without any
// rule needing to touch it, and once more after the reduction pipeline,
// on the bounds the rules left behind.
func checkColumnBounds(ps *ProblemState) bool {
	for j := 0; j < ps.N0; j++ {
		lo, up := ps.CLo[j], ps.CUp[j]
		if lo <= up {
			continue
		}
		if lo-up <= IntegerInfeasibilityThreshold {
			mid := (lo + up) / 2
			ps.CLo[j], ps.CUp[j] = mid, mid
			continue
		}
		return false
	}
	return true
}

func roundUp(x, tol float64) float64 {
	r := roundToNearest(x)
	if r < x-tol {
		r++
	}
	if r < x {
		return x
	}
	return r
}

func roundDown(x, tol float64) float64 {
	r := roundToNearest(x)
	if r > x+tol {
		r--
	}
	if r > x {
		return x
	}
	return r
}

func roundToNearest(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

// pushIntegerBoundsToOriginal writes back every surviving integer column's
// (possibly tightened) bounds onto work, keyed by original index, ahead of
// a presolve restart.
func pushIntegerBoundsToOriginal(ps *ProblemState, work Problem) {
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] || !ps.Integer[j] {
			continue
		}
		work.SetColBounds(j, ps.CLo[j], ps.CUp[j])
	}
}

// extractReducedProblem builds the reduced-dimensionality Problem the
// caller's solver will operate on, loading it via work.Clone().LoadProblem
// so the concrete Problem implementation is preserved.
func extractReducedProblem(work Problem, ps *ProblemState, pm *PresolveMatrix, colNew, rowNew []int) Problem {
	n, m := ps.N, ps.M
	colStart := make([]int, 0, n)
	colLen := make([]int, 0, n)
	var rowIdx []int
	var val []float64
	collo := make([]float64, n)
	colup := make([]float64, n)
	obj := make([]float64, n)
	rowlo := make([]float64, m)
	rowup := make([]float64, m)

	for _, j := range ps.OriginalColumn {
		colStart = append(colStart, len(rowIdx))
		rows, vals := pm.Column(j)
		start := len(rowIdx)
		for k, i := range rows {
			if rowNew[i] < 0 {
				continue
			}
			rowIdx = append(rowIdx, rowNew[i])
			val = append(val, vals[k])
		}
		colLen = append(colLen, len(rowIdx)-start)
	}
	for idx, j := range ps.OriginalColumn {
		collo[idx], colup[idx], obj[idx] = ps.CLo[j], ps.CUp[j], ps.Cost[j]
	}
	for idx, i := range ps.OriginalRow {
		rowlo[idx], rowup[idx] = ps.RLo[i], ps.RUp[i]
	}

	reduced := work.Clone()
	reduced.LoadProblem(n, m, colStart, colLen, rowIdx, val, collo, colup, obj, rowlo, rowup)
	for idx, j := range ps.OriginalColumn {
		reduced.SetInteger(idx, ps.Integer[j])
	}
	return reduced
}

func countElements(pm *PresolveMatrix, ps *ProblemState) int {
	n := 0
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] {
			continue
		}
		rows, _ := pm.Column(j)
		n += len(rows)
	}
	return n
}

