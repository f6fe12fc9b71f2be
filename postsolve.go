package presolve

// buildPostsolveState assembles the PostsolveState the action log replays
// against: every slice is sized at n0/m0, with surviving indices already
// populated from the solved reduced problem and everything else left at
// its zero value, to be filled in as Action.Postsolve calls unwind the log.
func buildPostsolveState(ps *ProblemState, reduced Problem, colNew, rowNew []int) (*PostsolveState, error) {
	n0, m0 := ps.N0, ps.M0

	colStart, colLen, rowIdx, val := reduced.MatrixByCol()

	// Remap the reduced problem's matrix into original index space so the
	// PostsolveMatrix arena is addressed the same way the action log's
	// Triples are (see each rule_*.go's Postsolve for why those are already
	// in original-row-index space).
	origColStart := make([]int, n0)
	origColLen := make([]int, n0)
	var origRowIdx []int
	var origVal []float64
	for j0 := 0; j0 < n0; j0++ {
		j2 := colNew[j0]
		if j2 < 0 {
			origColStart[j0] = len(origRowIdx)
			origColLen[j0] = 0
			continue
		}
		origColStart[j0] = len(origRowIdx)
		start, length := colStart[j2], colLen[j2]
		for k := start; k < start+length; k++ {
			origRowIdx = append(origRowIdx, ps.OriginalRow[rowIdx[k]])
			origVal = append(origVal, val[k])
		}
		origColLen[j0] = len(origRowIdx) - origColStart[j0]
	}

	arenaCap := 2*ps.Nelems0 + n0 + 1
	matrix := NewPostsolveMatrix(n0, m0, origColStart, origColLen, origRowIdx, origVal, arenaCap)

	st := &PostsolveState{
		Matrix:   matrix,
		ColLo:    append([]float64(nil), ps.CLo...),
		ColUp:    append([]float64(nil), ps.CUp...),
		Cost:     append([]float64(nil), ps.Cost...),
		Sol:      make([]float64, n0),
		RCosts:   make([]float64, n0),
		ColStat:  make([]BasisStatus, n0),
		RLo:      append([]float64(nil), ps.RLo...),
		RUp:      append([]float64(nil), ps.RUp...),
		Acts:     make([]float64, m0),
		RowDuals: make([]float64, m0),
		RowStat:  make([]BasisStatus, m0),
		ObjSense: ps.ObjSense,
		DObias:   ps.DObias,
		ZTolZB:   ps.ZTolZB,
		ZTolDJ:   ps.ZTolDJ,
	}

	sol := reduced.ColSolution()
	acts := reduced.RowActivity()
	rcosts := reduced.ReducedCost()
	rowduals := reduced.RowPrice()
	ws := reduced.WarmStart()

	for j0 := 0; j0 < n0; j0++ {
		j2 := colNew[j0]
		if j2 < 0 {
			continue
		}
		st.Sol[j0] = sol[j2]
		st.RCosts[j0] = rcosts[j2]
		if j2 < len(ws.ColStatus) {
			st.ColStat[j0] = ws.ColStatus[j2]
		}
	}
	for i0 := 0; i0 < m0; i0++ {
		i2 := rowNew[i0]
		if i2 < 0 {
			continue
		}
		st.Acts[i0] = acts[i2]
		st.RowDuals[i0] = rowduals[i2]
		if i2 < len(ws.RowStatus) {
			st.RowStat[i0] = ws.RowStatus[i2]
		}
	}

	if ps.ObjSense < 0 {
		for j0 := range st.RCosts {
			st.RCosts[j0] = -st.RCosts[j0]
		}
		for i0 := range st.RowDuals {
			st.RowDuals[i0] = -st.RowDuals[i0]
		}
	}

	return st, nil
}

// runPostsolve (C7) walks the action log newest-first, invoking each
// record's undo, expanding the reduced-dimensionality solution back to the
// original problem's size.
func runPostsolve(log *Log, st *PostsolveState) error {
	return log.Walk(func(a Action) error {
		return a.Postsolve(st)
	})
}

// writeBack copies a completed PostsolveState onto the original problem,
// negating duals/reduced costs back to the original objective sense and
// optionally writing a basis of size (n0, m0).
func writeBack(original Problem, st *PostsolveState, updateStatus bool, status Status) {
	if st.ObjSense < 0 {
		for j := range st.RCosts {
			st.RCosts[j] = -st.RCosts[j]
		}
		for i := range st.RowDuals {
			st.RowDuals[i] = -st.RowDuals[i]
		}
	}

	original.SetColSolution(st.Sol)
	original.SetRowActivity(st.Acts)
	original.SetReducedCosts(st.RCosts)
	original.SetRowPrice(st.RowDuals)

	if updateStatus {
		original.SetProblemStatus(status)
		original.SetWarmStart(WarmStart{ColStatus: st.ColStat, RowStatus: st.RowStat})
	}
}
