package presolve

// WarmStart carries a basis status for every structural variable and row
// (slack/artificial), plus the compact two-bit wire encoding used to
// exchange it with the external solver.
type WarmStart struct {
	ColStatus []BasisStatus
	RowStatus []BasisStatus
}

// Pack returns the column statuses followed by the row statuses, each
// packed two bits per entry, least-significant-bit first.
func (w WarmStart) Pack() (cols, rows []byte) {
	return PackBasis(w.ColStatus), PackBasis(w.RowStatus)
}

// SetPacked decodes packed column/row statuses into w.
func (w *WarmStart) SetPacked(cols []byte, nCols int, rows []byte, nRows int) {
	w.ColStatus = UnpackBasis(cols, nCols)
	w.RowStatus = UnpackBasis(rows, nRows)
}

// Problem is the external collaborator interface this engine consumes: an
// LP/MIP solver's problem representation. The engine only reads and writes
// through this interface; it never owns an original or reduced Problem.
//
// Implementations are expected to expose a column-major matrix
// (MatrixByCol), since that is the representation PresolveMatrix is built
// from and restored to.
type Problem interface {
	NumCols() int
	NumRows() int
	NumElements() int

	ColLower() []float64
	ColUpper() []float64
	ObjCoefficients() []float64
	RowLower() []float64
	RowUpper() []float64

	IsInteger(j int) bool
	// SetInteger marks column j continuous or integer. The engine calls it
	// to strip integrality from its working clone when Settings.KeepIntegers
	// is false, and to carry each surviving column's integrality onto the
	// reduced problem it builds.
	SetInteger(j int, isInteger bool)

	// MatrixByCol returns the column-major matrix: colStart/colLen index
	// into rowIdx/val, which hold exactly the sum of colLen entries
	// (gap-free).
	MatrixByCol() (colStart, colLen, rowIdx []int, val []float64)

	ColSolution() []float64
	RowActivity() []float64
	RowPrice() []float64
	ReducedCost() []float64

	WarmStart() WarmStart
	SetWarmStart(WarmStart)

	// ObjSense returns +1 for minimize, -1 for maximize.
	ObjSense() float64
	ObjOffset() float64

	PrimalTolerance() (float64, error)
	DualTolerance() (float64, error)

	SetColBounds(j int, lo, up float64)
	SetColSolution(x []float64)
	SetRowPrice(y []float64)
	SetReducedCosts(dj []float64)
	SetRowActivity(acts []float64)
	SetProblemStatus(Status)
	SetIterationCount(n int)

	LoadProblem(ncols, nrows int, colStart, colLen, rowIdx []int, val []float64,
		collo, colup, obj, rowlo, rowup []float64)

	Clone() Problem
}
