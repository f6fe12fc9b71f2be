package presolve

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestScenarioFixedVariable is spec.md section 8 scenario 1: min x1+x2 s.t.
// x1+x2=3, x1=1, 0<=x2<=5. make_fixed eliminates x1, folding its value into
// the row; with only x2 left on a now-trivial equality row, implied_free
// (running in the same inexpensive-loop pass) substitutes x2 out too, so
// the reduced problem collapses to zero rows and columns rather than
// stopping at spec.md's literal "row reduces to x2=2" intermediate state.
// Postsolve must still restore x=(1,2).
func TestScenarioFixedVariable(t *testing.T) {
	p := newFakeProblem(2, 1)
	p.collo[0], p.colup[0], p.obj[0] = 1, 1, 1
	p.collo[1], p.colup[1], p.obj[1] = 0, 5, 1
	p.rowlo[0], p.rowup[0] = 3, 3
	p.setColumn(0, []int{0}, []float64{1})
	p.setColumn(1, []int{0}, []float64{1})

	eng := New(NewSettings())
	reduced, err := eng.PresolvedModel(p)
	if err != nil {
		t.Fatalf("PresolvedModel: %v", err)
	}
	if reduced == nil {
		t.Fatalf("expected a non-nil reduced problem for a feasible model")
	}
	if reduced.NumCols() != 0 || reduced.NumRows() != 0 {
		t.Fatalf("reduced dims = (%d,%d), want (0,0): both x1 (make_fixed) and x2 (implied_free) are eliminated",
			reduced.NumCols(), reduced.NumRows())
	}

	if err := eng.Postsolve(true); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := p.sol[0], 1.0; got != want {
		t.Errorf("sol[0] = %v, want %v", got, want)
	}
	if got, want := p.sol[1], 2.0; got != want {
		t.Errorf("sol[1] = %v, want %v", got, want)
	}
}

// TestScenarioDoubleton is spec.md section 8 scenario 2: min x+y s.t.
// x+2y=4, 0<=x<=10, 0<=y<=10. After doubleton, one column survives with
// tightened bounds, and postsolve restores the eliminated column from the
// retained one's solved value.
func TestScenarioDoubleton(t *testing.T) {
	a := mat.NewDense(1, 2, []float64{1, 2})
	ps, pm := newTestState(a,
		[]float64{0, 0}, []float64{10, 10}, []float64{1, 1},
		[]float64{4}, []float64{4})
	log := NewLog()
	wl := newPair(ps)

	doubleton(ps, pm, wl, log)

	if !ps.RowDropped[0] {
		t.Fatalf("row 0 should have been dropped by doubleton")
	}
	// pickPivot prefers eliminating the larger-magnitude coefficient
	// column (the better pivot) when neither is integer, so y
	// (coefficient 2) is eliminated and x (coefficient 1) is retained.
	if !ps.ColDropped[1] {
		t.Fatalf("column 1 (y) should have been eliminated")
	}
	if ps.ColDropped[0] {
		t.Fatalf("column 0 (x) should have survived")
	}
	if got, want := ps.CUp[0], 4.0; got != want {
		t.Errorf("CUp[0] (x) = %v, want %v (y>=0 implies x<=4)", got, want)
	}
	if got, want := ps.CLo[0], 0.0; got != want {
		t.Errorf("CLo[0] (x) = %v, want %v (y<=10 implies x>=-16, clamped by x's own 0 lower bound)", got, want)
	}

	st := newTestPostsolveState(2, 1)
	st.ColLo[0], st.ColUp[0] = 0, 10
	st.ColLo[1], st.ColUp[1] = 0, 10
	st.Sol[0] = 4 // x* chosen at its new upper bound
	if err := runPostsolve(log, st); err != nil {
		t.Fatalf("runPostsolve: %v", err)
	}
	if got, want := st.Sol[1], 0.0; got != want {
		t.Errorf("restored y = %v, want %v ((4 - 1*4) / 2)", got, want)
	}
}

// TestScenarioForcingConstraint is spec.md section 8 scenario 3: x+y<=0,
// x,y>=0 forces both to zero. This engine's forcing rule requires every
// touched column to carry finite bounds (see rule_forcing.go's feasibility
// check), so both columns are given a finite upper bound here; the forced
// outcome (both at zero) is identical to the unbounded scenario in spec.md.
func TestScenarioForcingConstraint(t *testing.T) {
	p := newFakeProblem(2, 1)
	p.collo[0], p.colup[0] = 0, 5
	p.collo[1], p.colup[1] = 0, 5
	p.rowlo[0], p.rowup[0] = -PresolveInf, 0
	p.setColumn(0, []int{0}, []float64{1})
	p.setColumn(1, []int{0}, []float64{1})

	eng := New(NewSettings())
	reduced, err := eng.PresolvedModel(p)
	if err != nil {
		t.Fatalf("PresolvedModel: %v", err)
	}
	if reduced == nil {
		t.Fatalf("expected a non-nil reduced problem for a feasible model")
	}
	if reduced.NumCols() != 0 || reduced.NumRows() != 0 {
		t.Fatalf("reduced dims = (%d,%d), want (0,0): forcing should eliminate both columns and the row",
			reduced.NumCols(), reduced.NumRows())
	}

	if err := eng.Postsolve(true); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := p.sol[0], 0.0; got != want {
		t.Errorf("sol[0] = %v, want %v", got, want)
	}
	if got, want := p.sol[1], 0.0; got != want {
		t.Errorf("sol[1] = %v, want %v", got, want)
	}
	if p.acts[0] != 0 {
		t.Errorf("row activity = %v, want 0", p.acts[0])
	}
}

// TestScenarioDuplicateColumns is spec.md section 8 scenario 4: columns j,k
// with identical coefficient vectors and costs merge via dupcol; postsolve
// splits the merged value back across (x_j, x_k) respecting bounds.
func TestScenarioDuplicateColumns(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		1, 1,
		2, 2,
	})
	ps, pm := newTestState(a,
		[]float64{0, 0}, []float64{5, 5}, []float64{3, 3},
		[]float64{0, 0}, []float64{10, 20})
	log := NewLog()
	wl := newPair(ps)

	dupCols(ps, pm, wl, log)

	if log.Len() != 1 {
		t.Fatalf("log.Len() = %d, want 1 (one duplicate merge)", log.Len())
	}
	if !(ps.ColDropped[0] != ps.ColDropped[1]) {
		t.Fatalf("exactly one of the two identical columns should be dropped, got ColDropped = %v", ps.ColDropped)
	}
	keep := 0
	if ps.ColDropped[0] {
		keep = 1
	}
	if got, want := ps.CUp[keep], 10.0; got != want {
		t.Errorf("CUp[keep] = %v, want %v (5+1*5 widened bound)", got, want)
	}

	st := newTestPostsolveState(2, 2)
	st.ColLo[0], st.ColUp[0] = 0, 5
	st.ColLo[1], st.ColUp[1] = 0, 5
	st.Sol[keep] = 7 // merged value, within the widened [0,10] bound
	if err := runPostsolve(log, st); err != nil {
		t.Fatalf("runPostsolve: %v", err)
	}
	dup := 1 - keep
	xKeep, xDup := st.Sol[keep], st.Sol[dup]
	if xDup < 0 || xDup > 5 {
		t.Errorf("split xDup = %v, out of bounds [0,5]", xDup)
	}
	if xKeep < 0 || xKeep > 5 {
		t.Errorf("split xKeep = %v, out of bounds [0,5]", xKeep)
	}
	if got, want := xKeep+xDup, 7.0; abs(got-want) > 1e-9 {
		t.Errorf("xKeep+xDup = %v, want %v (ratio 1: merged column split additively)", got, want)
	}
}

// TestScenarioIntegerTighteningRestart is spec.md section 8 scenario 5:
// min x s.t. x>=0.3, x<=2.7, x integer. The first presolve attempt snaps
// the bounds to [1,2] and restarts (pushIntegerBoundsToOriginal) before any
// reduction rule runs; the second attempt sees already-integer bounds, so
// the (here, column-less) row/column reduction converges with no further
// tightening. Since the column ends up with no remaining matrix entries,
// it is eliminated as an empty column, committing the snapped lower bound
// as its value (cost is positive, so the minimizing choice is the lower
// bound) -- which is only correct because the snap already happened.
func TestScenarioIntegerTighteningRestart(t *testing.T) {
	p := newFakeProblem(1, 0)
	p.collo[0], p.colup[0], p.obj[0] = 0.3, 2.7, 1
	p.isInt[0] = true
	p.setColumn(0, nil, nil)

	eng := New(NewSettings())
	reduced, err := eng.PresolvedModel(p)
	if err != nil {
		t.Fatalf("PresolvedModel: %v", err)
	}
	if reduced == nil {
		t.Fatalf("expected a non-nil reduced problem")
	}
	if eng.Stats.IntegerBoundsModified == 0 {
		t.Errorf("IntegerBoundsModified = 0, want >0 (bounds should have snapped from [0.3,2.7] to [1,2])")
	}

	if err := eng.Postsolve(true); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := p.sol[0], 1.0; got != want {
		t.Errorf("sol[0] = %v, want %v (minimizing x over the snapped [1,2] range)", got, want)
	}
}

// TestScenarioInfeasibleByBounds is spec.md section 8 scenario 6: x>=5,
// x<=3 (crossed by more than the snap tolerance) must report infeasible
// through Status, not a Go error, with a nil reduced problem.
func TestScenarioInfeasibleByBounds(t *testing.T) {
	p := newFakeProblem(1, 1)
	p.collo[0], p.colup[0] = 5, 3
	p.rowlo[0], p.rowup[0] = -PresolveInf, PresolveInf
	p.setColumn(0, []int{0}, []float64{1})

	eng := New(NewSettings())
	reduced, err := eng.PresolvedModel(p)
	if err != nil {
		t.Fatalf("PresolvedModel: %v", err)
	}
	if reduced != nil {
		t.Fatalf("expected nil reduced problem for crossed bounds")
	}
	if p.status != StatusInfeasible {
		t.Fatalf("status = %v, want StatusInfeasible", p.status)
	}
}

// TestScenarioBoundsCrossedWithinTolerance is the companion boundary case
// from spec.md section 8: a column whose bounds are crossed by less than
// IntegerInfeasibilityThreshold is floating-point noise, not infeasibility,
// and must be snapped to a single point rather than rejected.
func TestScenarioBoundsCrossedWithinTolerance(t *testing.T) {
	p := newFakeProblem(1, 1)
	p.collo[0], p.colup[0] = 3.0, 3.0-IntegerInfeasibilityThreshold/2
	p.rowlo[0], p.rowup[0] = -PresolveInf, PresolveInf
	p.setColumn(0, []int{0}, []float64{1})

	eng := New(NewSettings())
	reduced, err := eng.PresolvedModel(p)
	if err != nil {
		t.Fatalf("PresolvedModel: %v", err)
	}
	if reduced == nil {
		t.Fatalf("a sub-tolerance bound crossing must snap, not report infeasible")
	}
	if p.status == StatusInfeasible {
		t.Fatalf("status = StatusInfeasible, want a snap within tolerance")
	}
}
