package presolve

// actionFixed is make_fixed's undo record: the column's index, the value
// it was fixed to, and the column's (row, value) entries, which Postsolve
// uses to restore the column in the postsolve matrix. The reduced cost is
// not reconstructed -- clo==cup means any dual sign is complementary-slack
// feasible here, so RCosts[j] is simply left at its zero value by
// Postsolve.
type actionFixed struct {
	Col     int
	Value   float64
	Triples []Triple
}

func (a *actionFixed) Name() string { return "fixed" }

func (a *actionFixed) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.Col, a.Triples); err != nil {
		return err
	}
	st.Sol[a.Col] = a.Value
	if a.Value >= st.ColUp[a.Col]-1e-12 {
		st.ColStat[a.Col] = AtUpper
	} else {
		st.ColStat[a.Col] = AtLower
	}
	return nil
}

// makeFixed (C5 make_fixed): columns with clo==cup are removed; their
// value is saved for postsolve and folded into the row sides and
// objective bias of every row they touch.
func makeFixed(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, j := range wl.Cols.Current() {
		if ps.ColDropped[j] || ps.ColProhibited[j] {
			continue
		}
		if ps.CUp[j]-ps.CLo[j] > ps.ZTolZB {
			continue
		}
		v := ps.CLo[j]
		rows, vals := pm.Column(j)
		rowsCopy := append([]int(nil), rows...)
		valsCopy := append([]float64(nil), vals...)
		triples := make([]Triple, len(rowsCopy))
		for k, i := range rowsCopy {
			triples[k] = Triple{Row: i, Val: valsCopy[k]}
		}
		for k, i := range rowsCopy {
			a := valsCopy[k]
			if abs(ps.RLo[i]) < PresolveInf {
				ps.RLo[i] -= a * v
			}
			if abs(ps.RUp[i]) < PresolveInf {
				ps.RUp[i] -= a * v
			}
			wl.Rows.MarkChanged(i)
		}
		ps.DObias += ps.Cost[j] * v
		pm.DeleteColumn(j)
		ps.DropColumn(j)
		log.Push(&actionFixed{Col: j, Value: v, Triples: triples})
	}
}
