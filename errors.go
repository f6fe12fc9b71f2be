package presolve

import "errors"

// Sentinel errors returned by this package. These are reserved for the
// "configuration/interface failure" and "internal invariant violation"
// error kinds; a model that is merely infeasible or unbounded is reported
// through Status, never through one of these.
var (
	// ErrNoReducedProblem is returned by Postsolve when the engine holds a
	// presolve state but no original or reduced problem to write back to.
	ErrNoReducedProblem = errors.New("presolve: no reduced problem available")

	// ErrPostsolveBeforePresolve is returned by Postsolve and
	// SetOriginalModel when no call to PresolvedModel has succeeded on this
	// engine.
	ErrPostsolveBeforePresolve = errors.New("presolve: postsolve called before a successful presolve")

	// ErrFreeListExhausted indicates the postsolve arena's free list ran
	// dry, which should be impossible if the presolve-time bound of
	// 2*nelems0 slots held. Treated as an internal invariant violation.
	ErrFreeListExhausted = errors.New("presolve: postsolve free list exhausted")

	// ErrGapViolation indicates invariant GAP (adjacent linked entries
	// overlap in the arena) failed a debug check.
	ErrGapViolation = errors.New("presolve: matrix gap invariant violated")

	// ErrMirrorMismatch indicates invariant MIRROR (row/column mirrors
	// disagree on a stored element) failed a debug check.
	ErrMirrorMismatch = errors.New("presolve: row/column mirror invariant violated")

	// ErrMissingTolerance is returned when the Problem collaborator cannot
	// supply a required primal or dual tolerance.
	ErrMissingTolerance = errors.New("presolve: solver interface did not supply a required tolerance")

	// ErrDimensionMismatch is returned by SetOriginalModel when the
	// replacement model's dimensions do not match the model the action
	// log was built against.
	ErrDimensionMismatch = errors.New("presolve: replacement model dimensions do not match the original")

	// ErrAlreadyRunning is returned by PresolvedModel if a presolve is
	// already in flight on this engine instance.
	ErrAlreadyRunning = errors.New("presolve: a presolve is already running on this engine instance")
)
