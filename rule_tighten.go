package presolve

// actionTightened is do_tighten's undo record: a zero-cost column's bound
// was tightened from its previous value to a new, implied-redundant one.
// Since the column's cost is zero, the change cannot affect optimality;
// postsolve only has to ensure the reported value is clamped back within
// the original bound if the solver's value happens to sit in the sliver
// between the old and new bound (the reduced problem never allows that,
// but a defensive clamp costs nothing here).
type actionTightened struct {
	Col      int
	WasLower bool // true: OldBound was the old lower bound, false: upper
	OldBound float64
}

func (a *actionTightened) Name() string { return "tightened_bounds" }

func (a *actionTightened) Postsolve(st *PostsolveState) error {
	if a.WasLower {
		if st.Sol[a.Col] < a.OldBound {
			st.Sol[a.Col] = a.OldBound
		}
	} else {
		if st.Sol[a.Col] > a.OldBound {
			st.Sol[a.Col] = a.OldBound
		}
	}
	return nil
}

// tighten (C5 do_tighten / zerocost): for a zero-cost column, any row it
// appears in that constrains it more tightly than its explicit bound,
// given the other columns' extreme contributions, tightens that bound --
// the column cannot be made worse off in the objective by the move, so
// the tightening is always safe.
func tighten(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, j := range wl.Cols.Current() {
		if ps.ColDropped[j] || ps.ColProhibited[j] {
			continue
		}
		if ps.Cost[j] != 0 {
			continue
		}
		rows, vals := pm.Column(j)
		for k, i := range rows {
			if ps.RowDropped[i] || ps.RowProhibited[i] {
				continue
			}
			coef := vals[k]
			if coef == 0 {
				continue
			}
			cols, cvals := pm.RowEntries(i)
			otherMin, otherMax := 0.0, 0.0
			ok := true
			for ck, cj := range cols {
				if cj == j {
					continue
				}
				a := cvals[ck]
				lo, up := ps.CLo[cj], ps.CUp[cj]
				if lo <= -PresolveInf || up >= PresolveInf {
					ok = false
					break
				}
				if a >= 0 {
					otherMin += a * lo
					otherMax += a * up
				} else {
					otherMin += a * up
					otherMax += a * lo
				}
			}
			if !ok {
				continue
			}
			loImplied, hiImplied := boundsForPivot(ps.RLo[i], ps.RUp[i], otherMin, otherMax, coef)
			if loImplied > ps.CLo[j]+ps.ZTolZB && loImplied <= ps.CUp[j] {
				old := ps.CLo[j]
				ps.CLo[j] = loImplied
				wl.Cols.MarkChanged(j)
				log.Push(&actionTightened{Col: j, WasLower: true, OldBound: old})
			}
			if hiImplied < ps.CUp[j]-ps.ZTolZB && hiImplied >= ps.CLo[j] {
				old := ps.CUp[j]
				ps.CUp[j] = hiImplied
				wl.Cols.MarkChanged(j)
				log.Push(&actionTightened{Col: j, WasLower: false, OldBound: old})
			}
		}
	}
}

// actionUselessRow is the undo record for a row dropped because its
// implied activity range already lies entirely within [rlo,rup] (so the
// constraint can never bind, "useless"). Postsolve restores the row's
// dual/status to the slack-basic convention and sets its activity to
// zero. Rows with no remaining non-zeros are not dropped with this record;
// uselessRows leaves them to dropEmptyRows.
type actionUselessRow struct {
	Row int
}

func (a *actionUselessRow) Name() string { return "useless_constraint" }

func (a *actionUselessRow) Postsolve(st *PostsolveState) error {
	st.RowDuals[a.Row] = 0
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = 0
	return nil
}

// uselessRows (C5 useless_constraint) drops non-empty rows
// whose implied activity range is already contained in [rlo,rup], so the
// row constrains nothing and can be removed without affecting feasibility.
func uselessRows(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, i := range wl.Rows.Current() {
		if ps.RowDropped[i] || ps.RowProhibited[i] {
			continue
		}
		cols, vals := pm.RowEntries(i)
		if len(cols) == 0 {
			// An empty row's feasibility depends on whether [rlo,rup]
			// contains zero; dropEmptyRows runs the actual check (and can
			// set StatusInfeasible) at the end of the pipeline. Dropping it
			// here unconditionally would silently mask that.
			continue
		}
		actMin, actMax := 0.0, 0.0
		ok := true
		for k, j := range cols {
			if ps.ColProhibited[j] {
				ok = false
				break
			}
			a := vals[k]
			lo, up := ps.CLo[j], ps.CUp[j]
			if lo <= -PresolveInf || up >= PresolveInf {
				ok = false
				break
			}
			if a >= 0 {
				actMin += a * lo
				actMax += a * up
			} else {
				actMin += a * up
				actMax += a * lo
			}
		}
		if !ok {
			continue
		}
		loOK := ps.RLo[i] <= -PresolveInf || actMin >= ps.RLo[i]-ps.ZTolZB
		upOK := ps.RUp[i] >= PresolveInf || actMax <= ps.RUp[i]+ps.ZTolZB
		if loOK && upOK {
			pm.DeleteRow(i)
			ps.DropRow(i)
			log.Push(&actionUselessRow{Row: i})
		}
	}
}
