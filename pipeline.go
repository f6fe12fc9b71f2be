package presolve

// runPipeline (C6) drives the reduction rules to a fixed point, following
// spec.md's rule ordering exactly:
//
//	seed worklists
//	repeat major-pass up to numberPasses times:
//	  inexpensive fixed-point loop:
//	    loop:
//	      headBefore = action log length
//	      run (in order): slack_doubleton, doubleton, tighten,
//	                      forcing, implied_free(fill_level = 2)
//	      if status != feasible: abort
//	      swap worklist buffers
//	      if log did not advance and fillLevel > 0: exit inexpensive loop
//	  reseed worklists
//	  if dual allowed:
//	    up to 5 times: remove_dual, then implied_free(fill_level = 0);
//	    stop when log did not advance
//	  run dupcol, duprow, useless_constraint
//	  count rows with zero length; if unchanged vs previous major pass, exit
//
// After the major loop: drop_zero_coefficients, drop_empty_cols,
// drop_empty_rows.
//
// make_fixed is listed among the rules in spec.md section 4.5 but is absent
// from that section's literal ordering diagram, which only names the five
// rules above. Every other rule that can pin a column's bounds together
// (doubleton substitution, tighten, forcing) leaves the actual elimination
// of a clo==cup column to make_fixed, so it runs first in the inexpensive
// loop, ahead of slack_doubleton, on every iteration.
func runPipeline(ps *ProblemState, pm *PresolveMatrix, log *Log, numberPasses int, doDualStuff bool) {
	rows := SeedRespectingProhibited(ps.M0, ps.RowProhibited)
	cols := SeedRespectingProhibited(ps.N0, ps.ColProhibited)
	wl := &worklistPair{Rows: rows, Cols: cols}

	prevZeroLenRows := -1

	for pass := 0; pass < numberPasses; pass++ {
		for {
			before := log.Len()

			makeFixed(ps, pm, wl, log)
			if ps.Status.Terminal() {
				return
			}
			slackDoubleton(ps, pm, wl, log)
			if ps.Status.Terminal() {
				return
			}
			doubleton(ps, pm, wl, log)
			if ps.Status.Terminal() {
				return
			}
			tighten(ps, pm, wl, log)
			if ps.Status.Terminal() {
				return
			}
			forcing(ps, pm, wl, log)
			if ps.Status.Terminal() {
				return
			}
			impliedFree(ps, pm, wl, log, defaultFillLevel)
			if ps.Status.Terminal() {
				return
			}

			wl.Rows.SwapBuffers()
			wl.Cols.SwapBuffers()

			if log.Len() == before && defaultFillLevel > 0 {
				break
			}
		}

		wl.Rows = SeedRespectingProhibited(ps.M0, ps.RowProhibited)
		wl.Cols = SeedRespectingProhibited(ps.N0, ps.ColProhibited)

		if doDualStuff {
			for i := 0; i < 5; i++ {
				before := log.Len()
				removeDual(ps, pm, wl, log)
				if ps.Status.Terminal() {
					return
				}
				impliedFree(ps, pm, wl, log, 0)
				if ps.Status.Terminal() {
					return
				}
				wl.Rows.SwapBuffers()
				wl.Cols.SwapBuffers()
				if log.Len() == before {
					break
				}
			}
		}

		dupCols(ps, pm, wl, log)
		if ps.Status.Terminal() {
			return
		}
		dupRows(ps, pm, wl, log)
		if ps.Status.Terminal() {
			return
		}
		uselessRows(ps, pm, wl, log)
		if ps.Status.Terminal() {
			return
		}

		zeroLen := countZeroLengthRows(ps, pm)
		if zeroLen == prevZeroLenRows {
			break
		}
		prevZeroLenRows = zeroLen
	}

	dropZeroCoefficients(ps, pm, log)
	dropEmptyCols(ps, pm, log)
	dropEmptyRows(ps, pm, log)
}

func countZeroLengthRows(ps *ProblemState, pm *PresolveMatrix) int {
	n := 0
	for i := 0; i < ps.M0; i++ {
		if ps.RowDropped[i] {
			continue
		}
		cols, _ := pm.RowEntries(i)
		if len(cols) == 0 {
			n++
		}
	}
	return n
}
