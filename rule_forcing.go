package presolve

// actionForcing is forcing_constraint's undo record: the row was driven to
// one of its two sides by pushing every column to the bound that attains
// the implied extreme activity. Coeffs/ColLo/ColUp/ColCost are snapshots
// of the columns as they stood before those columns were fixed and
// dropped, so Postsolve can recompute each one's value, reduced cost, and
// status from the single binding row. RowDual is left at zero: a forced
// row's true dual depends on the rest of the (already-discarded) basis,
// so this is a documented simplification rather than an exact
// reconstruction.
type actionForcing struct {
	Row       int
	AtUpper   bool // true if the row was driven to RUp, false if to RLo
	Cols      []int
	Coeffs    []float64
	ColLo     []float64
	ColUp     []float64
	ColCost   []float64
	RowDual   float64
	Triples   [][]Triple
}

func (a *actionForcing) Name() string { return "forcing_constraint" }

func (a *actionForcing) Postsolve(st *PostsolveState) error {
	for k, j := range a.Cols {
		if err := st.Matrix.RestoreColumn(j, a.Triples[k]); err != nil {
			return err
		}
		coef := a.Coeffs[k]
		var v float64
		// AtUpper means the row is pinned at RUp via its minimum implied
		// activity: that minimum is attained by a positive coefficient at
		// its lower bound, not its upper bound, hence the negation.
		atUpperBound := (coef > 0) != a.AtUpper
		if atUpperBound {
			v = a.ColUp[k]
			st.ColStat[j] = AtUpper
		} else {
			v = a.ColLo[k]
			st.ColStat[j] = AtLower
		}
		st.Sol[j] = v
		st.RCosts[j] = a.ColCost[k] - a.RowDual*coef
	}
	st.RowDuals[a.Row] = a.RowDual
	st.RowStat[a.Row] = AtLower
	if a.AtUpper {
		st.RowStat[a.Row] = AtUpper
	}
	act := 0.0
	for k, j := range a.Cols {
		act += a.Coeffs[k] * st.Sol[j]
	}
	st.Acts[a.Row] = act
	return nil
}

// forcing (C5 forcing_constraint): a row whose implied activity range,
// computed from its columns' bounds, has its min equal to rup or its max
// equal to rlo is "forced" -- every variable in it must sit at the bound
// that attains the extreme, so the whole row and all its columns can be
// fixed and dropped in one step.
func forcing(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for _, i := range wl.Rows.Current() {
		if ps.RowDropped[i] || ps.RowProhibited[i] {
			continue
		}
		cols, vals := pm.RowEntries(i)
		if len(cols) == 0 {
			continue
		}

		actMin, actMax := 0.0, 0.0
		feasible := true
		for k, j := range cols {
			if ps.ColProhibited[j] {
				feasible = false
				break
			}
			a := vals[k]
			lo, up := ps.CLo[j], ps.CUp[j]
			if a >= 0 {
				if lo <= -PresolveInf || up >= PresolveInf {
					feasible = false
					break
				}
				actMin += a * lo
				actMax += a * up
			} else {
				if lo <= -PresolveInf || up >= PresolveInf {
					feasible = false
					break
				}
				actMin += a * up
				actMax += a * lo
			}
		}
		if !feasible {
			continue
		}

		atUpper := abs(actMin-ps.RUp[i]) <= ps.ZTolZB && ps.RUp[i] < PresolveInf
		atLower := abs(actMax-ps.RLo[i]) <= ps.ZTolZB && ps.RLo[i] > -PresolveInf
		if !atUpper && !atLower {
			continue
		}

		colsCopy := append([]int(nil), cols...)
		coeffs := append([]float64(nil), vals...)
		colLo := make([]float64, len(colsCopy))
		colUp := make([]float64, len(colsCopy))
		colCost := make([]float64, len(colsCopy))
		triples := make([][]Triple, len(colsCopy))
		var dobiasDelta float64
		for k, j := range colsCopy {
			a := coeffs[k]
			colLo[k], colUp[k], colCost[k] = ps.CLo[j], ps.CUp[j], ps.Cost[j]
			atUpperBound := (a > 0) != atUpper
			v := colLo[k]
			if atUpperBound {
				v = colUp[k]
			}
			dobiasDelta += colCost[k] * v

			rows, rvals := pm.Column(j)
			rowsCopy := append([]int(nil), rows...)
			rvalsCopy := append([]float64(nil), rvals...)
			colTriples := make([]Triple, len(rowsCopy))
			for idx, r := range rowsCopy {
				colTriples[idx] = Triple{Row: r, Val: rvalsCopy[idx]}
			}
			triples[k] = colTriples
			for idx, r := range rowsCopy {
				if r == i {
					continue
				}
				av := rvalsCopy[idx]
				if abs(ps.RLo[r]) < PresolveInf {
					ps.RLo[r] -= av * v
				}
				if abs(ps.RUp[r]) < PresolveInf {
					ps.RUp[r] -= av * v
				}
				wl.Rows.MarkChanged(r)
			}
			pm.DeleteColumn(j)
			ps.DropColumn(j)
		}
		ps.DObias += dobiasDelta
		pm.DeleteRow(i)
		ps.DropRow(i)

		log.Push(&actionForcing{
			Row: i, AtUpper: atUpper,
			Cols: colsCopy, Coeffs: coeffs,
			ColLo: colLo, ColUp: colUp, ColCost: colCost,
			RowDual: 0, Triples: triples,
		})
	}
}
