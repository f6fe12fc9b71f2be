package presolve

// actionFixedFromDual is remove_dual's undo record when a column is fixed
// because sign analysis of its reduced cost forces it to one bound at any
// optimum: a free (or one-sided) column with strictly non-zero cost and no
// row left that could drive its reduced cost to zero must sit at the
// bound that the sign of its cost favors.
type actionFixedFromDual struct {
	Col     int
	AtUpper bool
	Cost    float64
	Triples []Triple
}

func (a *actionFixedFromDual) Name() string { return "fixed_from_dual" }

func (a *actionFixedFromDual) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.Col, a.Triples); err != nil {
		return err
	}
	if a.AtUpper {
		st.Sol[a.Col] = st.ColUp[a.Col]
		st.ColStat[a.Col] = AtUpper
	} else {
		st.Sol[a.Col] = st.ColLo[a.Col]
		st.ColStat[a.Col] = AtLower
	}
	st.RCosts[a.Col] = a.Cost
	return nil
}

// actionDualRemovedRow is the undo record for a row removed by dual
// analysis (e.g. a singleton row whose one column's sign-forced value
// already makes the row's slack variable's status determinate without
// needing the row in the reduced problem).
type actionDualRemovedRow struct {
	Row int
	Val float64
}

func (a *actionDualRemovedRow) Name() string { return "dual_removed_row" }

func (a *actionDualRemovedRow) Postsolve(st *PostsolveState) error {
	st.RowDuals[a.Row] = 0
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = a.Val
	return nil
}

// removeDual (C5 remove_dual) fixes columns whose reduced-cost sign is
// forced: a column unbounded below (clo = -inf) with strictly positive
// cost, or unbounded above (cup = +inf) with strictly negative cost, would
// make the LP unbounded unless it is fixed at its one remaining finite
// bound; a column free in both directions with non-zero cost makes the
// problem unbounded outright. This analysis is unsound in the presence of
// integrality (a reduced cost argument about the LP relaxation's
// unboundedness says nothing about whether an integer-feasible optimum
// exists at a different bound), so the caller must not invoke this when
// any column is integer -- see pipeline.go's doDualStuff gate.
func removeDual(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, j := range wl.Cols.Current() {
		if ps.ColDropped[j] || ps.ColProhibited[j] {
			continue
		}
		cost := ps.Cost[j]
		if cost == 0 {
			continue
		}
		lo, up := ps.CLo[j], ps.CUp[j]
		loInf, upInf := lo <= -PresolveInf, up >= PresolveInf
		if !loInf && !upInf {
			continue // both bounds finite: not a dual-forced column
		}
		if loInf && upInf {
			ps.Status = StatusUnbounded
			return
		}

		var atUpper bool
		var v float64
		switch {
		case loInf && cost > 0:
			ps.Status = StatusUnbounded
			return
		case loInf && cost < 0:
			atUpper, v = true, up
		case upInf && cost < 0:
			ps.Status = StatusUnbounded
			return
		case upInf && cost > 0:
			atUpper, v = false, lo
		}

		rows, vals := pm.Column(j)
		rowsCopy := append([]int(nil), rows...)
		valsCopy := append([]float64(nil), vals...)
		triples := make([]Triple, len(rowsCopy))
		for idx, r := range rowsCopy {
			triples[idx] = Triple{Row: r, Val: valsCopy[idx]}
		}
		for idx, i := range rowsCopy {
			a := valsCopy[idx]
			if abs(ps.RLo[i]) < PresolveInf {
				ps.RLo[i] -= a * v
			}
			if abs(ps.RUp[i]) < PresolveInf {
				ps.RUp[i] -= a * v
			}
			wl.Rows.MarkChanged(i)
		}
		ps.DObias += cost * v
		pm.DeleteColumn(j)
		ps.DropColumn(j)
		log.Push(&actionFixedFromDual{Col: j, AtUpper: atUpper, Cost: cost, Triples: triples})

		for idx, i := range rowsCopy {
			if ps.RowDropped[i] || ps.RowProhibited[i] {
				continue
			}
			remaining, _ := pm.RowEntries(i)
			if len(remaining) == 0 {
				act := valsCopy[idx] * v
				pm.DeleteRow(i)
				ps.DropRow(i)
				log.Push(&actionDualRemovedRow{Row: i, Val: act})
			}
		}
	}
}
