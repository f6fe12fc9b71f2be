package presolve

// actionDroppedCoefficient is drop_zero_coefficients' undo record. Nothing
// needs undoing: the coefficient was already negligible, so removing it
// changed no feasible value. The record exists purely for diagnostics.
type actionDroppedCoefficient struct {
	Row, Col int
}

func (a *actionDroppedCoefficient) Name() string { return "dropped_zero_coefficient" }

func (a *actionDroppedCoefficient) Postsolve(st *PostsolveState) error { return nil }

// dropZeroCoefficients (C5 drop_zero_coefficients) removes any matrix
// entry whose magnitude is at or below ztolzb. Spec.md invariant I3
// requires none survive past this rule.
func dropZeroCoefficients(ps *ProblemState, pm *PresolveMatrix, log *Log) {
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] {
			continue
		}
		rows, vals := pm.Column(j)
		rowsCopy := append([]int(nil), rows...)
		valsCopy := append([]float64(nil), vals...)
		for k, i := range rowsCopy {
			if abs(valsCopy[k]) <= ps.ZTolZB {
				pm.DeleteElement(i, j)
				log.Push(&actionDroppedCoefficient{Row: i, Col: j})
			}
		}
	}
}

// actionDroppedEmptyColumn is drop_empty_cols' undo record: a column with
// no remaining non-zeros contributes nothing to any row, so its value is
// free to pick within its own bounds at whichever point minimizes its own
// cost (or, if its cost is zero, any feasible point; the lower bound is
// as good as any).
type actionDroppedEmptyColumn struct {
	Col    int
	Lo, Up float64
	Cost   float64
}

func (a *actionDroppedEmptyColumn) Name() string { return "dropped_empty_column" }

func (a *actionDroppedEmptyColumn) Postsolve(st *PostsolveState) error {
	st.Matrix.DeleteColumn(a.Col) // already empty; keeps the arena's bookkeeping exact
	switch {
	case a.Cost > 0:
		st.Sol[a.Col] = a.Lo
		st.ColStat[a.Col] = AtLower
	case a.Cost < 0:
		st.Sol[a.Col] = a.Up
		st.ColStat[a.Col] = AtUpper
	default:
		st.Sol[a.Col] = a.Lo
		st.ColStat[a.Col] = AtLower
	}
	st.RCosts[a.Col] = a.Cost
	return nil
}

func dropEmptyCols(ps *ProblemState, pm *PresolveMatrix, log *Log) {
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] {
			continue
		}
		rows, _ := pm.Column(j)
		if len(rows) > 0 {
			continue
		}
		lo, up, cost := ps.CLo[j], ps.CUp[j], ps.Cost[j]
		pm.DeleteColumn(j)
		ps.DropColumn(j)
		log.Push(&actionDroppedEmptyColumn{Col: j, Lo: lo, Up: up, Cost: cost})
	}
}

// actionDroppedEmptyRow is drop_empty_rows' undo record: an empty row with
// rlo<=0<=rup is trivially satisfied; its dual is zero.
type actionDroppedEmptyRow struct {
	Row int
}

func (a *actionDroppedEmptyRow) Name() string { return "dropped_empty_row" }

func (a *actionDroppedEmptyRow) Postsolve(st *PostsolveState) error {
	st.RowDuals[a.Row] = 0
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = 0
	return nil
}

func dropEmptyRows(ps *ProblemState, pm *PresolveMatrix, log *Log) {
	for i := 0; i < ps.M0; i++ {
		if ps.RowDropped[i] {
			continue
		}
		cols, _ := pm.RowEntries(i)
		if len(cols) > 0 {
			continue
		}
		if ps.RLo[i] > ps.ZTolZB || ps.RUp[i] < -ps.ZTolZB {
			ps.Status = StatusInfeasible
			return
		}
		pm.DeleteRow(i)
		ps.DropRow(i)
		log.Push(&actionDroppedEmptyRow{Row: i})
	}
}
