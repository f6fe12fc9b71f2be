package presolve

// fakeProblem is a minimal in-memory Problem implementation used to drive
// the orchestrator (C8) end-to-end in tests, without a real external LP
// solver. It stores its matrix column-major and keeps every vector the
// Problem interface exposes.
type fakeProblem struct {
	ncols, nrows int

	collo, colup, obj []float64
	rowlo, rowup      []float64
	isInt             []bool

	colStart, colLen, rowIdx []int
	val                      []float64

	sol, acts, rowPrice, reducedCost []float64
	warm                             WarmStart

	objSense float64
	objOff   float64

	ztolzb, ztoldj float64

	status   Status
	iters    int
}

func newFakeProblem(ncols, nrows int) *fakeProblem {
	return &fakeProblem{
		ncols: ncols, nrows: nrows,
		collo: make([]float64, ncols), colup: make([]float64, ncols), obj: make([]float64, ncols),
		rowlo: make([]float64, nrows), rowup: make([]float64, nrows),
		isInt:    make([]bool, ncols),
		colStart: make([]int, ncols), colLen: make([]int, ncols),
		sol: make([]float64, ncols), acts: make([]float64, nrows),
		rowPrice: make([]float64, nrows), reducedCost: make([]float64, ncols),
		objSense: 1,
		ztolzb:   1e-7, ztoldj: 1e-7,
	}
}

func (p *fakeProblem) NumCols() int { return p.ncols }
func (p *fakeProblem) NumRows() int { return p.nrows }
func (p *fakeProblem) NumElements() int {
	n := 0
	for _, l := range p.colLen {
		n += l
	}
	return n
}

func (p *fakeProblem) ColLower() []float64        { return p.collo }
func (p *fakeProblem) ColUpper() []float64        { return p.colup }
func (p *fakeProblem) ObjCoefficients() []float64 { return p.obj }
func (p *fakeProblem) RowLower() []float64        { return p.rowlo }
func (p *fakeProblem) RowUpper() []float64        { return p.rowup }

func (p *fakeProblem) IsInteger(j int) bool          { return p.isInt[j] }
func (p *fakeProblem) SetInteger(j int, isInt bool)  { p.isInt[j] = isInt }

func (p *fakeProblem) MatrixByCol() (colStart, colLen, rowIdx []int, val []float64) {
	return p.colStart, p.colLen, p.rowIdx, p.val
}

func (p *fakeProblem) ColSolution() []float64 { return p.sol }
func (p *fakeProblem) RowActivity() []float64 { return p.acts }
func (p *fakeProblem) RowPrice() []float64    { return p.rowPrice }
func (p *fakeProblem) ReducedCost() []float64 { return p.reducedCost }

func (p *fakeProblem) WarmStart() WarmStart       { return p.warm }
func (p *fakeProblem) SetWarmStart(w WarmStart)   { p.warm = w }

func (p *fakeProblem) ObjSense() float64 { return p.objSense }
func (p *fakeProblem) ObjOffset() float64 { return p.objOff }

func (p *fakeProblem) PrimalTolerance() (float64, error) { return p.ztolzb, nil }
func (p *fakeProblem) DualTolerance() (float64, error)   { return p.ztoldj, nil }

func (p *fakeProblem) SetColBounds(j int, lo, up float64) { p.collo[j], p.colup[j] = lo, up }
func (p *fakeProblem) SetColSolution(x []float64)         { copy(p.sol, x) }
func (p *fakeProblem) SetRowPrice(y []float64)            { copy(p.rowPrice, y) }
func (p *fakeProblem) SetReducedCosts(dj []float64)       { copy(p.reducedCost, dj) }
func (p *fakeProblem) SetRowActivity(acts []float64)      { copy(p.acts, acts) }
func (p *fakeProblem) SetProblemStatus(s Status)          { p.status = s }
func (p *fakeProblem) SetIterationCount(n int)            { p.iters = n }

func (p *fakeProblem) LoadProblem(ncols, nrows int, colStart, colLen, rowIdx []int, val []float64,
	collo, colup, obj, rowlo, rowup []float64) {
	p.ncols, p.nrows = ncols, nrows
	p.colStart, p.colLen, p.rowIdx, p.val = colStart, colLen, rowIdx, val
	p.collo, p.colup, p.obj = collo, colup, obj
	p.rowlo, p.rowup = rowlo, rowup
	p.isInt = make([]bool, ncols)
	p.sol = make([]float64, ncols)
	p.acts = make([]float64, nrows)
	p.rowPrice = make([]float64, nrows)
	p.reducedCost = make([]float64, ncols)
}

func (p *fakeProblem) Clone() Problem {
	c := *p
	c.collo = append([]float64(nil), p.collo...)
	c.colup = append([]float64(nil), p.colup...)
	c.obj = append([]float64(nil), p.obj...)
	c.rowlo = append([]float64(nil), p.rowlo...)
	c.rowup = append([]float64(nil), p.rowup...)
	c.isInt = append([]bool(nil), p.isInt...)
	c.colStart = append([]int(nil), p.colStart...)
	c.colLen = append([]int(nil), p.colLen...)
	c.rowIdx = append([]int(nil), p.rowIdx...)
	c.val = append([]float64(nil), p.val...)
	c.sol = append([]float64(nil), p.sol...)
	c.acts = append([]float64(nil), p.acts...)
	c.rowPrice = append([]float64(nil), p.rowPrice...)
	c.reducedCost = append([]float64(nil), p.reducedCost...)
	return &c
}

// setColumn appends column j's entries to rowIdx/val and sets colStart[j]
// and colLen[j]; tests call it once per column in order, which keeps the
// layout gap-free.
func (p *fakeProblem) setColumn(j int, rows []int, vals []float64) {
	p.colStart[j] = len(p.rowIdx)
	p.rowIdx = append(p.rowIdx, rows...)
	p.val = append(p.val, vals...)
	p.colLen[j] = len(rows)
}
