package presolve

// ProblemState (C2) holds the bounds, costs, integrality, solution, and
// tolerance data that reduction rules read and mutate. It enforces no
// invariants beyond array lengths; keeping it consistent with the matrix
// store (C1) is the caller's responsibility.
//
// Arrays are sized at N0/M0 for the lifetime of a presolve pass: a rule
// that eliminates a column or row does not compact the arrays, it only
// sets the corresponding ColDropped/RowDropped bit and decrements N/M.
// Compaction into a dense 0..N-1 / 0..M-1 index space, and the
// construction of OriginalColumn/OriginalRow, happens once at the end when
// the orchestrator extracts the reduced problem (see presolve.go). This
// mirrors OsiPresolve/CoinPresolve's own hincol[j]==-1 sentinel convention
// and avoids rules having to keep a live remap consistent mid-pass.
type ProblemState struct {
	N0, M0, Nelems0 int
	N, M            int

	// Per-column data, indexed 0..N0-1.
	CLo, CUp, Cost []float64
	Integer        []bool
	ColStat        []BasisStatus
	Sol            []float64
	RCosts         []float64
	ColProhibited  []bool
	ColDropped     []bool

	// Per-row data, indexed 0..M0-1.
	RLo, RUp, Acts, RowDuals []float64
	RowStat                  []BasisStatus
	RowProhibited            []bool
	RowDropped               []bool

	// ObjSense is +1 for minimize, -1 for maximize.
	ObjSense float64
	// DObias is the objective constant accumulated by substitutions (e.g.
	// doubleton elimination folding a fixed term into the objective).
	DObias float64

	ZTolZB float64
	ZTolDJ float64

	Status Status

	// OriginalColumn[j]/OriginalRow[i], once populated by Compact, map a
	// surviving reduced index to its index in the original problem. They
	// are nil until Compact has run.
	OriginalColumn []int
	OriginalRow    []int
}

// NewProblemState allocates a ProblemState sized for a problem with ncols
// columns and nrows rows.
func NewProblemState(ncols, nrows, nelems int, objSense, ztolzb, ztoldj float64) *ProblemState {
	return &ProblemState{
		N0: ncols, M0: nrows, Nelems0: nelems,
		N: ncols, M: nrows,
		CLo: make([]float64, ncols), CUp: make([]float64, ncols), Cost: make([]float64, ncols),
		Integer: make([]bool, ncols), ColStat: make([]BasisStatus, ncols),
		Sol: make([]float64, ncols), RCosts: make([]float64, ncols),
		ColProhibited: make([]bool, ncols), ColDropped: make([]bool, ncols),
		RLo: make([]float64, nrows), RUp: make([]float64, nrows),
		Acts: make([]float64, nrows), RowDuals: make([]float64, nrows),
		RowStat: make([]BasisStatus, nrows), RowProhibited: make([]bool, nrows),
		RowDropped: make([]bool, nrows),
		ObjSense:   objSense, ZTolZB: ztolzb, ZTolDJ: ztoldj,
		Status: StatusUnknown,
	}
}

// DropColumn marks column j dead and decrements N. It is idempotent.
func (ps *ProblemState) DropColumn(j int) {
	if ps.ColDropped[j] {
		return
	}
	ps.ColDropped[j] = true
	ps.N--
}

// DropRow marks row i dead and decrements M. It is idempotent.
func (ps *ProblemState) DropRow(i int) {
	if ps.RowDropped[i] {
		return
	}
	ps.RowDropped[i] = true
	ps.M--
}

// Compact builds OriginalColumn and OriginalRow by scanning ColDropped and
// RowDropped in original order, and returns a map from original index to
// reduced index (-1 for a dropped entry) for columns and for rows, so
// callers can translate matrix indices when copying out the reduced
// problem.
func (ps *ProblemState) Compact() (colNew, rowNew []int) {
	ps.OriginalColumn = make([]int, 0, ps.N)
	colNew = make([]int, ps.N0)
	for j := 0; j < ps.N0; j++ {
		if ps.ColDropped[j] {
			colNew[j] = -1
			continue
		}
		colNew[j] = len(ps.OriginalColumn)
		ps.OriginalColumn = append(ps.OriginalColumn, j)
	}
	ps.OriginalRow = make([]int, 0, ps.M)
	rowNew = make([]int, ps.M0)
	for i := 0; i < ps.M0; i++ {
		if ps.RowDropped[i] {
			rowNew[i] = -1
			continue
		}
		rowNew[i] = len(ps.OriginalRow)
		ps.OriginalRow = append(ps.OriginalRow, i)
	}
	return colNew, rowNew
}
