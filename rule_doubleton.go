package presolve

import "gonum.org/v1/gonum/floats"

// actionDoubleton is doubleton's undo record. Row i: ACoefR*x_ret +
// BCoefE*x_elim = Rhs. RetOrigLo/RetOrigUp/RetOrigCost are the retained
// column's bounds/cost as they stood before this elimination tightened
// them; they are not needed to compute the eliminated column's value
// (that only needs Rhs/ACoefR/BCoefE and the retained column's already-
// known solution value) but are kept for parity with spec.md's action
// variant list; Postsolve does not read them.
type actionDoubleton struct {
	Row             int
	RetCol, ElimCol int
	ACoefR, BCoefE  float64
	Rhs             float64
	OrigCostE       float64
	RetOrigLo       float64
	RetOrigUp       float64
	RetOrigCost     float64
	Triples         []Triple
}

func (a *actionDoubleton) Name() string { return "doubleton" }

func (a *actionDoubleton) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.ElimCol, a.Triples); err != nil {
		return err
	}
	xr := st.Sol[a.RetCol]
	xe := (a.Rhs - a.ACoefR*xr) / a.BCoefE
	st.Sol[a.ElimCol] = xe
	st.ColStat[a.ElimCol] = Basic
	st.RCosts[a.ElimCol] = 0
	// The retained column's cost was reduced by OrigCostE*ACoefR/BCoefE
	// during elimination (to fold x_elim's cost contribution into x_ret);
	// undo that on the reduced cost the solver reported.
	st.RCosts[a.RetCol] += a.OrigCostE * a.ACoefR / a.BCoefE
	y := a.OrigCostE / a.BCoefE
	st.RowDuals[a.Row] = y
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = a.ACoefR*xr + a.BCoefE*xe
	return nil
}

// doubleton (C5 doubleton): a row with exactly two non-zeros and fixed
// sides (rlo==rup) permits eliminating one variable. The column with the
// "better" pivot (larger magnitude, continuous over integer unless no
// safe alternative exists) is eliminated; the surviving column's bounds
// are tightened by substitution and its cost absorbs the eliminated
// column's cost contribution.
func doubleton(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, i := range wl.Rows.Current() {
		if ps.RowDropped[i] || ps.RowProhibited[i] {
			continue
		}
		if ps.RUp[i]-ps.RLo[i] > ps.ZTolZB {
			continue
		}
		cols, vals := pm.RowEntries(i)
		if len(cols) != 2 {
			continue
		}
		c0, c1 := cols[0], cols[1]
		v0, v1 := vals[0], vals[1]
		if ps.ColProhibited[c0] || ps.ColProhibited[c1] {
			continue
		}

		elim, ret := pickPivot(ps, c0, c1, v0, v1)
		var aRet, bElim float64
		if elim == c0 {
			bElim, aRet = v0, v1
		} else {
			bElim, aRet = v1, v0
		}
		if bElim == 0 {
			continue
		}

		rhs := ps.RLo[i]
		origCostE := ps.Cost[elim]

		lo := impliedBoundFromSub(rhs, bElim, aRet, ps.CLo[elim], ps.CUp[elim])
		hi := impliedBoundFromSub(rhs, bElim, aRet, ps.CUp[elim], ps.CLo[elim])
		if lo > hi {
			lo, hi = hi, lo
		}
		retOrigLo, retOrigUp, retOrigCost := ps.CLo[ret], ps.CUp[ret], ps.Cost[ret]
		if lo > ps.CLo[ret] {
			ps.CLo[ret] = lo
		}
		if hi < ps.CUp[ret] {
			ps.CUp[ret] = hi
		}
		if origCostE != 0 {
			ps.Cost[ret] -= origCostE * aRet / bElim
			ps.DObias += origCostE * rhs / bElim
		}

		// Substitute x_elim out of every other row it appears in:
		// row_k -= (c_k/bElim) * row_i.
		rows, rvals := pm.Column(elim)
		rowsCopy := append([]int(nil), rows...)
		rvalsCopy := append([]float64(nil), rvals...)
		for idx, k := range rowsCopy {
			if k == i {
				continue
			}
			ck := rvalsCopy[idx]
			alpha := -ck / bElim
			if abs(ps.RLo[k]) < PresolveInf {
				ps.RLo[k] += alpha * rhs
			}
			if abs(ps.RUp[k]) < PresolveInf {
				ps.RUp[k] += alpha * rhs
			}
			if err := pm.AddRowMultiple(i, k, alpha, ps.ZTolZB); err != nil {
				ps.Status = StatusBoth
				return
			}
			wl.Rows.MarkChanged(k)
		}

		elimRows, elimVals := pm.Column(elim)
		triples := make([]Triple, len(elimRows))
		for k, r := range elimRows {
			triples[k] = Triple{Row: r, Val: elimVals[k]}
		}

		pm.DeleteRow(i)
		pm.DeleteColumn(elim)
		ps.DropRow(i)
		ps.DropColumn(elim)
		wl.Cols.MarkChanged(ret)

		log.Push(&actionDoubleton{
			Row: i, RetCol: ret, ElimCol: elim,
			ACoefR: aRet, BCoefE: bElim, Rhs: rhs, OrigCostE: origCostE,
			RetOrigLo: retOrigLo, RetOrigUp: retOrigUp, RetOrigCost: retOrigCost,
			Triples: triples,
		})
	}
}

// pickPivot decides which of c0/c1 is eliminated: the rule prefers to
// eliminate the column with the larger-magnitude coefficient (the better
// pivot) and prefers to eliminate a continuous column over an integer one
// unless that is the only safe choice.
func pickPivot(ps *ProblemState, c0, c1 int, v0, v1 float64) (elim, ret int) {
	switch {
	case ps.Integer[c0] && !ps.Integer[c1]:
		return c1, c0
	case ps.Integer[c1] && !ps.Integer[c0]:
		return c0, c1
	case !floats.EqualWithinAbs(abs(v0), abs(v1), 1e-12) && abs(v0) < abs(v1):
		return c1, c0
	default:
		return c0, c1
	}
}

// impliedBoundFromSub computes one endpoint of the implied bound on x_ret,
// x_ret = (rhs - bElim*boundElim)/aRet, handling the infinite sentinel.
func impliedBoundFromSub(rhs, bElim, aRet, boundElim, otherBoundElim float64) float64 {
	if abs(boundElim) >= PresolveInf {
		bOverA := bElim / aRet
		positiveInfty := boundElim > 0
		switch {
		case positiveInfty && bOverA > 0:
			return -PresolveInf
		case positiveInfty && bOverA <= 0:
			return PresolveInf
		case !positiveInfty && bOverA > 0:
			return PresolveInf
		default:
			return -PresolveInf
		}
	}
	return (rhs - bElim*boundElim) / aRet
}
