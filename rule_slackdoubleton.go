package presolve

// actionSlackDoubleton is slack_doubleton's undo record: a row of the form
// a*x + b*s = rhs where s is a free singleton column, eliminated as a
// slack definition. OrigCostS is s's cost before it was folded into x's
// cost and the objective bias, needed to reconstruct the row's dual
// (optimality requires s's reduced cost be exactly zero: y = OrigCostS/B).
type actionSlackDoubleton struct {
	Row       int
	XCol      int
	SCol      int
	ACoef     float64
	BCoef     float64
	Rhs       float64
	OrigCostS float64
	Triples   []Triple
}

func (a *actionSlackDoubleton) Name() string { return "slack_doubleton" }

func (a *actionSlackDoubleton) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.SCol, a.Triples); err != nil {
		return err
	}
	x := st.Sol[a.XCol]
	s := (a.Rhs - a.ACoef*x) / a.BCoef
	st.Sol[a.SCol] = s
	st.ColStat[a.SCol] = Basic
	st.RCosts[a.SCol] = 0
	y := a.OrigCostS / a.BCoef
	st.RowDuals[a.Row] = y
	st.RowStat[a.Row] = Basic
	st.Acts[a.Row] = a.ACoef*x + a.BCoef*s
	return nil
}

// slackDoubleton (C5 slack_doubleton) eliminates equality rows of the form
// a*x + b*s = rhs where s is a free singleton column, applying repeatedly
// until quiescent (a freshly-singleton column can appear after another
// elimination touches its row).
func slackDoubleton(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	for {
		progressed := false
		for _, i := range wl.Rows.Current() {
			if ps.RowDropped[i] || ps.RowProhibited[i] {
				continue
			}
			if ps.RUp[i]-ps.RLo[i] > ps.ZTolZB {
				continue // not an equality row
			}
			cols, vals := pm.RowEntries(i)
			if len(cols) != 2 {
				continue
			}
			c0, c1 := cols[0], cols[1]
			v0, v1 := vals[0], vals[1]

			var xCol, sCol int
			var aCoef, bCoef float64
			switch {
			case isFreeSingleton(ps, pm, c1):
				xCol, aCoef = c0, v0
				sCol, bCoef = c1, v1
			case isFreeSingleton(ps, pm, c0):
				xCol, aCoef = c1, v1
				sCol, bCoef = c0, v0
			default:
				continue
			}
			if ps.ColProhibited[sCol] || bCoef == 0 {
				continue
			}

			sRows, sVals := pm.Column(sCol)
			triples := make([]Triple, len(sRows))
			for k, r := range sRows {
				triples[k] = Triple{Row: r, Val: sVals[k]}
			}

			rhs := ps.RLo[i]
			origCostS := ps.Cost[sCol]
			if origCostS != 0 {
				ps.Cost[xCol] -= origCostS * aCoef / bCoef
				ps.DObias += origCostS * rhs / bCoef
			}

			pm.DeleteRow(i)
			pm.DeleteColumn(sCol)
			ps.DropRow(i)
			ps.DropColumn(sCol)
			wl.Cols.MarkChanged(xCol)

			log.Push(&actionSlackDoubleton{
				Row: i, XCol: xCol, SCol: sCol,
				ACoef: aCoef, BCoef: bCoef, Rhs: rhs, OrigCostS: origCostS,
				Triples: triples,
			})
			progressed = true
		}
		if !progressed {
			return
		}
		wl.Rows.SwapBuffers()
	}
}

// isFreeSingleton reports whether column j is unbounded in both
// directions and appears in exactly one row.
func isFreeSingleton(ps *ProblemState, pm *PresolveMatrix, j int) bool {
	if ps.ColDropped[j] || ps.ColProhibited[j] {
		return false
	}
	if ps.CLo[j] > -PresolveInf || ps.CUp[j] < PresolveInf {
		return false
	}
	rows, _ := pm.Column(j)
	return len(rows) == 1
}
