package presolve

// Sentinels and default tolerances, mirroring OsiPresolve's process-wide
// constants. These are package-level constants shared by every engine;
// only the feasibility and dual tolerances can be set per engine, through
// Settings below.
const (
	// PresolveInf is the coefficient/bound magnitude treated as infinity.
	// It must match the external solver's own convention.
	PresolveInf = 1e30

	// IntegerSnapTolerance is the tolerance used when a surviving integer
	// column's bounds are rounded to integers (lower bound up, upper bound
	// down).
	IntegerSnapTolerance = 1e-5

	// IntegerInfeasibilityThreshold is the largest bound-crossing allowed
	// after integer snapping before the model is reported infeasible.
	IntegerInfeasibilityThreshold = 1e-8

	// DefaultNumberPasses is the default bound on the outer major-pass
	// loop.
	DefaultNumberPasses = 5

	// defaultFillLevel is the maximum number of new non-zeros the
	// implied-free rule may create per substitution during the inexpensive
	// loop.
	defaultFillLevel = 2
)

// Settings holds the tunables for one Presolve engine. The zero value is
// not directly usable; use NewSettings for a Settings populated with the
// documented defaults, then override individual fields.
type Settings struct {
	// FeasibilityTolerance (ztolzb) bounds row-activity and bound
	// violations that rules treat as satisfied, and is also used to drop
	// near-zero matrix entries.
	FeasibilityTolerance float64

	// DualTolerance (ztoldj) is carried into each run's ProblemState and
	// PostsolveState as ZTolDJ; no reduction rule or undo step reads it.
	DualTolerance float64

	// NumberPasses bounds the outer major-pass loop. Zero still runs the
	// final drop_zero_coefficients/drop_empty_cols/drop_empty_rows cleanup
	// and returns a reduced problem equal to the input sans those.
	NumberPasses int

	// KeepIntegers, if false, strips integrality from the cloned problem
	// before presolve; the caller is responsible for restoring it on the
	// reduced problem if desired.
	KeepIntegers bool

	// NonLinearValue, if non-zero, marks any row or column whose matrix or
	// objective coefficient exactly equals this value as prohibited before
	// presolve starts. Zero disables the check.
	NonLinearValue float64

	// Debug, if true, makes Postsolve verify the postsolve arena's slot
	// accounting (PostsolveMatrix.Guard) after the action log is replayed.
	// No checks run between pipeline stages, and the engine does not call
	// PresolveMatrix.CheckInvariants. It is never enabled by default.
	Debug bool
}

// NewSettings returns Settings populated with OsiPresolve's historical
// defaults.
func NewSettings() Settings {
	return Settings{
		FeasibilityTolerance: 1e-7,
		DualTolerance:        1e-7,
		NumberPasses:         DefaultNumberPasses,
		KeepIntegers:         true,
		NonLinearValue:       0,
		Debug:                false,
	}
}
