package presolve

// actionImpliedFree is implied_free's undo record. Row i: Coef*x_elim +
// sum_k OtherCoefs[k]*x_OtherCols[k] = Rhs. This implementation restricts
// implied_free to equality rows (rlo==rup): the general rule also allows
// substituting through an inequality row whose slack absorbs any residual,
// but that needs a slack variable the reduced problem no longer carries
// once the row is dropped, so the exact reconstruction there is
// considerably more involved. Restricting to equality rows keeps the
// substitution an exact, always-sound special case of the general rule,
// at the cost of firing less often than a full implementation would.
type actionImpliedFree struct {
	Row          int
	ElimCol      int
	Coef         float64
	OtherCols    []int
	OtherCoefs   []float64
	Rhs          float64
	OrigCostElim float64
	Triples      []Triple
}

func (a *actionImpliedFree) Name() string { return "implied_free" }

func (a *actionImpliedFree) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.ElimCol, a.Triples); err != nil {
		return err
	}
	sum := 0.0
	for k, j := range a.OtherCols {
		sum += a.OtherCoefs[k] * st.Sol[j]
		if a.OrigCostElim != 0 {
			st.RCosts[j] += a.OrigCostElim * a.OtherCoefs[k] / a.Coef
		}
	}
	xe := (a.Rhs - sum) / a.Coef
	st.Sol[a.ElimCol] = xe
	st.ColStat[a.ElimCol] = Basic
	st.RCosts[a.ElimCol] = 0
	y := a.OrigCostElim / a.Coef
	st.RowDuals[a.Row] = y
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = sum + a.Coef*xe
	return nil
}

// impliedFree (C5 implied_free): when a column's explicit bounds are
// redundant given the range one of its equality rows already forces on
// it, the column is free as far as that row is concerned and can be
// substituted out through it. fillLevel caps how many non-zeros a single
// substitution may introduce into the rows it touches; 0 disables the
// rule entirely.
func impliedFree(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log, fillLevel int) {
	if fillLevel <= 0 {
		return
	}
	for _, j := range wl.Cols.Current() {
		if ps.ColDropped[j] || ps.ColProhibited[j] {
			continue
		}
		rows, vals := pm.Column(j)
		defRow, defCoef := -1, 0.0
		for k, i := range rows {
			if ps.RowDropped[i] || ps.RowProhibited[i] {
				continue
			}
			if ps.RUp[i]-ps.RLo[i] > ps.ZTolZB {
				continue // only equality rows are used as a defining equation
			}
			coef := vals[k]
			if coef == 0 {
				continue
			}
			cols, cvals := pm.RowEntries(i)
			if len(cols)-1 > fillLevel {
				continue
			}
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
			if loImplied >= ps.CLo[j]-ps.ZTolZB && hiImplied <= ps.CUp[j]+ps.ZTolZB {
				defRow, defCoef = i, coef
				break
			}
		}
		if defRow < 0 {
			continue
		}

		i, coef := defRow, defCoef
		rhs := ps.RLo[i]
		origCostElim := ps.Cost[j]
		cols, cvals := pm.RowEntries(i)
		otherCols := make([]int, 0, len(cols)-1)
		otherCoefs := make([]float64, 0, len(cols)-1)
		for ck, cj := range cols {
			if cj == j {
				continue
			}
			otherCols = append(otherCols, cj)
			otherCoefs = append(otherCoefs, cvals[ck])
		}

		if origCostElim != 0 {
			ps.DObias += origCostElim * rhs / coef
			for k, cj := range otherCols {
				ps.Cost[cj] -= origCostElim * otherCoefs[k] / coef
			}
		}

		rows2, rvals2 := pm.Column(j)
		rowsCopy := append([]int(nil), rows2...)
		rvalsCopy := append([]float64(nil), rvals2...)
		triples := make([]Triple, len(rowsCopy))
		for idx, r := range rowsCopy {
			triples[idx] = Triple{Row: r, Val: rvalsCopy[idx]}
		}
		for idx, k := range rowsCopy {
			if k == i {
				continue
			}
			ck := rvalsCopy[idx]
			alpha := -ck / coef
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

		pm.DeleteRow(i)
		pm.DeleteColumn(j)
		ps.DropRow(i)
		ps.DropColumn(j)
		for _, cj := range otherCols {
			wl.Cols.MarkChanged(cj)
		}

		log.Push(&actionImpliedFree{
			Row: i, ElimCol: j, Coef: coef,
			OtherCols: otherCols, OtherCoefs: otherCoefs,
			Rhs: rhs, OrigCostElim: origCostElim, Triples: triples,
		})
	}
}

// boundsForPivot turns a row's [rlo,rup] and the min/max contribution of
// every other column in it into an implied [lo,hi] bound on the pivot
// column given its coefficient, handling the infinite-bound sentinel.
func boundsForPivot(rlo, rup, otherMin, otherMax, coef float64) (lo, hi float64) {
	var rawLo, rawHi float64
	if rlo <= -PresolveInf {
		rawLo = -PresolveInf
	} else {
		rawLo = rlo - otherMax
	}
	if rup >= PresolveInf {
		rawHi = PresolveInf
	} else {
		rawHi = rup - otherMin
	}
	if coef > 0 {
		lo, hi = rawLo/coef, rawHi/coef
	} else {
		lo, hi = rawHi/coef, rawLo/coef
	}
	return lo, hi
}
