package presolve

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// actionDupCol is dupcol's undo record: column Dup was a positive scalar
// multiple (by Ratio) of column Keep and was merged into it. Postsolve
// splits the merged value back across the two, honoring each one's
// original bounds -- any split that keeps both within bounds is optimal,
// since the two columns were interchangeable in every row and in cost.
type actionDupCol struct {
	Keep, Dup      int
	Ratio          float64 // Dup's column = Ratio * Keep's column
	DupLo, DupUp   float64
	KeepLo, KeepUp float64
	Triples        []Triple
}

func (a *actionDupCol) Name() string { return "duplicate_column" }

func (a *actionDupCol) Postsolve(st *PostsolveState) error {
	if err := st.Matrix.RestoreColumn(a.Dup, a.Triples); err != nil {
		return err
	}
	total := st.Sol[a.Keep] // merged value, expressed in Keep's units
	// Want x_keep + Ratio*x_dup = total, x_dup within [DupLo,DupUp],
	// x_keep within [KeepLo,KeepUp]. Prefer x_dup at its lower bound.
	xDup := a.DupLo
	xKeep := total - a.Ratio*xDup
	if xKeep < a.KeepLo || xKeep > a.KeepUp {
		xDup = a.DupUp
		xKeep = total - a.Ratio*xDup
		if xKeep < a.KeepLo {
			xKeep = a.KeepLo
		} else if xKeep > a.KeepUp {
			xKeep = a.KeepUp
		}
	}
	st.Sol[a.Keep] = xKeep
	st.Sol[a.Dup] = xDup
	st.ColStat[a.Dup] = Basic
	st.RCosts[a.Dup] = st.RCosts[a.Keep] / a.Ratio
	return nil
}

// dupCols (C5 dupcol) merges columns that are positive scalar multiples of
// one another: every row coefficient and the cost of the duplicate column
// are exactly Ratio times the keeper's, so the duplicate can be folded
// into the keeper by widening its bounds and dropping it.
func dupCols(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	seen := map[string][]int{}
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] || ps.ColProhibited[j] {
			continue
		}
		key := columnSignature(pm, j)
		seen[key] = append(seen[key], j)
	}
	for _, group := range seen {
		if len(group) < 2 {
			continue
		}
		keep := group[0]
		for _, dup := range group[1:] {
			if ps.ColDropped[keep] || ps.ColDropped[dup] {
				continue
			}
			ratio, ok := columnRatio(pm, keep, dup)
			if !ok || ratio <= 0 {
				continue
			}
			if ps.Cost[dup] != ratio*ps.Cost[keep] {
				continue
			}

			dupLo, dupUp := ps.CLo[dup], ps.CUp[dup]
			keepLo, keepUp := ps.CLo[keep], ps.CUp[keep]

			lo1 := keepLo + ratio*dupLo
			up1 := keepUp + ratio*dupUp
			if abs(dupLo) >= PresolveInf || abs(keepLo) >= PresolveInf {
				lo1 = -PresolveInf
			}
			if abs(dupUp) >= PresolveInf || abs(keepUp) >= PresolveInf {
				up1 = PresolveInf
			}
			ps.CLo[keep], ps.CUp[keep] = lo1, up1

			dupRows, dupVals := pm.Column(dup)
			triples := make([]Triple, len(dupRows))
			for k, r := range dupRows {
				triples[k] = Triple{Row: r, Val: dupVals[k]}
			}

			pm.DeleteColumn(dup)
			ps.DropColumn(dup)
			wl.Cols.MarkChanged(keep)

			log.Push(&actionDupCol{
				Keep: keep, Dup: dup, Ratio: ratio,
				DupLo: dupLo, DupUp: dupUp, KeepLo: keepLo, KeepUp: keepUp,
				Triples: triples,
			})
		}
	}
}

// actionDupRow is duprow's undo record: row Dup was a positive scalar
// multiple (by Ratio) of row Keep and was removed; nothing needs
// reconstructing at postsolve beyond marking the dropped row's dual as
// Ratio times the surviving row's, which keeps the reduced-cost identity
// consistent for every column the two rows shared.
type actionDupRow struct {
	Keep, Dup int
	Ratio     float64
}

func (a *actionDupRow) Name() string { return "duplicate_row" }

func (a *actionDupRow) Postsolve(st *PostsolveState) error {
	st.RowDuals[a.Dup] = a.Ratio * st.RowDuals[a.Keep]
	st.RowStat[a.Dup] = st.RowStat[a.Keep]
	st.Acts[a.Dup] = a.Ratio * st.Acts[a.Keep]
	return nil
}

// dupRows (C5 duprow) removes a row that is a positive scalar multiple of
// another, after checking the multiple maps one row's [rlo,rup] onto the
// other's (so the constraint it expresses is identical, not merely
// parallel).
func dupRows(ps *ProblemState, pm *PresolveMatrix, wl *worklistPair, log *Log) {
	seen := map[string][]int{}
	for i := 0; i < ps.M0; i++ {
		if ps.RowDropped[i] || ps.RowProhibited[i] {
			continue
		}
		key := rowSignature(pm, i)
		seen[key] = append(seen[key], i)
	}
	for _, group := range seen {
		if len(group) < 2 {
			continue
		}
		keep := group[0]
		for _, dup := range group[1:] {
			if ps.RowDropped[keep] || ps.RowDropped[dup] {
				continue
			}
			ratio, ok := rowRatio(pm, keep, dup)
			if !ok || ratio <= 0 {
				continue
			}
			loOK := (ps.RLo[dup] <= -PresolveInf && ps.RLo[keep] <= -PresolveInf) ||
				abs(ps.RLo[dup]-ratio*ps.RLo[keep]) <= ps.ZTolZB
			upOK := (ps.RUp[dup] >= PresolveInf && ps.RUp[keep] >= PresolveInf) ||
				abs(ps.RUp[dup]-ratio*ps.RUp[keep]) <= ps.ZTolZB
			if !loOK || !upOK {
				continue
			}

			pm.DeleteRow(dup)
			ps.DropRow(dup)
			log.Push(&actionDupRow{Keep: keep, Dup: dup, Ratio: ratio})
		}
	}
}

// columnSignature buckets columns by the sorted set of rows they touch,
// so only columns that could possibly be scalar multiples are compared.
func columnSignature(pm *PresolveMatrix, j int) string {
	rows, _ := pm.Column(j)
	return sortedIntKey(rows)
}

func rowSignature(pm *PresolveMatrix, i int) string {
	cols, _ := pm.RowEntries(i)
	return sortedIntKey(cols)
}

func sortedIntKey(xs []int) string {
	sorted := append([]int(nil), xs...)
	slices.Sort(sorted)
	b := make([]byte, 0, len(sorted)*5)
	for _, v := range sorted {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ',')
	}
	return string(b)
}

// columnRatio returns v, ok where ok is true if column b's non-zeros are
// exactly v times column a's, row for row.
func columnRatio(pm *PresolveMatrix, a, b int) (float64, bool) {
	rowsA, valsA := pm.Column(a)
	rowsB, valsB := pm.Column(b)
	if len(rowsA) != len(rowsB) || len(rowsA) == 0 {
		return 0, false
	}
	idx := map[int]float64{}
	for k, r := range rowsA {
		idx[r] = valsA[k]
	}
	ratio := 0.0
	for k, r := range rowsB {
		av, ok := idx[r]
		if !ok || av == 0 {
			return 0, false
		}
		r0 := valsB[k] / av
		if ratio == 0 {
			ratio = r0
		} else if abs(r0-ratio) > 1e-9*abs(ratio) {
			return 0, false
		}
	}
	return ratio, true
}

func rowRatio(pm *PresolveMatrix, a, b int) (float64, bool) {
	colsA, valsA := pm.RowEntries(a)
	colsB, valsB := pm.RowEntries(b)
	if len(colsA) != len(colsB) || len(colsA) == 0 {
		return 0, false
	}
	idx := map[int]float64{}
	for k, c := range colsA {
		idx[c] = valsA[k]
	}
	ratio := 0.0
	for k, c := range colsB {
		av, ok := idx[c]
		if !ok || av == 0 {
			return 0, false
		}
		r0 := valsB[k] / av
		if ratio == 0 {
			ratio = r0
		} else if abs(r0-ratio) > 1e-9*abs(ratio) {
			return 0, false
		}
	}
	return ratio, true
}
