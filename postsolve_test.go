package presolve

import "testing"

func newTestPostsolveState(n, m int) *PostsolveState {
	return &PostsolveState{
		Matrix:   NewPostsolveMatrix(n, m, make([]int, n), make([]int, n), nil, nil, 4),
		ColLo:    make([]float64, n), ColUp: make([]float64, n), Cost: make([]float64, n),
		Sol:      make([]float64, n), RCosts: make([]float64, n), ColStat: make([]BasisStatus, n),
		RLo:      make([]float64, m), RUp: make([]float64, m),
		Acts:     make([]float64, m), RowDuals: make([]float64, m), RowStat: make([]BasisStatus, m),
		ObjSense: 1,
	}
}

// TestActionFixedPostsolve checks make_fixed's undo: the eliminated column
// is restored to its fixed value and its matrix entries reinstated via the
// arena/free-list round trip (I6 in miniature).
func TestActionFixedPostsolve(t *testing.T) {
	st := newTestPostsolveState(2, 1)
	st.ColUp[0] = 5
	a := &actionFixed{Col: 0, Value: 3, Triples: []Triple{{Row: 0, Val: 2}}}

	if err := a.Postsolve(st); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := st.Sol[0], 3.0; got != want {
		t.Errorf("Sol[0] = %v, want %v", got, want)
	}
	if st.ColStat[0] != AtLower {
		t.Errorf("ColStat[0] = %v, want AtLower (value 3 is not near ColUp=5)", st.ColStat[0])
	}
	col := st.Matrix.Column(0)
	if len(col) != 1 || col[0] != (Triple{Row: 0, Val: 2}) {
		t.Errorf("Matrix.Column(0) = %v, want [{0 2}]", col)
	}
}

// TestActionForcingPostsolveAtUpper exercises the fixed sign logic (see
// DESIGN.md decision 9): when a row is forced to RUp (AtUpper=true), a
// positive-coefficient column must land at its LOWER bound, since that is
// the assignment that attains the row's minimum implied activity.
func TestActionForcingPostsolveAtUpper(t *testing.T) {
	st := newTestPostsolveState(1, 1)
	st.ColLo[0], st.ColUp[0] = 0, 10

	a := &actionForcing{
		Row: 0, AtUpper: true,
		Cols: []int{0}, Coeffs: []float64{1},
		ColLo: []float64{0}, ColUp: []float64{10}, ColCost: []float64{0},
		RowDual: 0, Triples: [][]Triple{{{Row: 0, Val: 1}}},
	}
	if err := a.Postsolve(st); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := st.Sol[0], 0.0; got != want {
		t.Fatalf("Sol[0] = %v, want %v (AtUpper forcing must send a positive-coefficient column to its lower bound)", got, want)
	}
	if st.ColStat[0] != AtLower {
		t.Errorf("ColStat[0] = %v, want AtLower", st.ColStat[0])
	}
}

// TestActionForcingPostsolveAtLower is the mirror case: a row forced to
// RLo (AtUpper=false) sends a positive-coefficient column to its UPPER
// bound, the assignment attaining the row's maximum implied activity.
func TestActionForcingPostsolveAtLower(t *testing.T) {
	st := newTestPostsolveState(1, 1)
	st.ColLo[0], st.ColUp[0] = 0, 10

	a := &actionForcing{
		Row: 0, AtUpper: false,
		Cols: []int{0}, Coeffs: []float64{1},
		ColLo: []float64{0}, ColUp: []float64{10}, ColCost: []float64{0},
		RowDual: 0, Triples: [][]Triple{{{Row: 0, Val: 1}}},
	}
	if err := a.Postsolve(st); err != nil {
		t.Fatalf("Postsolve: %v", err)
	}
	if got, want := st.Sol[0], 10.0; got != want {
		t.Fatalf("Sol[0] = %v, want %v (AtLower forcing must send a positive-coefficient column to its upper bound)", got, want)
	}
	if st.ColStat[0] != AtUpper {
		t.Errorf("ColStat[0] = %v, want AtUpper", st.ColStat[0])
	}
}

// TestRunPostsolveWalksNewestFirst checks that runPostsolve visits action
// log entries in the reverse order they were pushed: column 0 is fixed
// twice, so only a newest-first walk leaves the oldest record's value 1
// in place (an oldest-first walk would leave 5).
func TestRunPostsolveWalksNewestFirst(t *testing.T) {
	log := NewLog()
	log.Push(&actionFixed{Col: 0, Value: 1})
	log.Push(&actionFixed{Col: 1, Value: 2})
	log.Push(&actionFixed{Col: 0, Value: 5})

	st := newTestPostsolveState(2, 0)
	if err := runPostsolve(log, st); err != nil {
		t.Fatalf("runPostsolve: %v", err)
	}
	if st.Sol[0] != 1 || st.Sol[1] != 2 {
		t.Fatalf("Sol = %v, want [1 2]", st.Sol)
	}
}
