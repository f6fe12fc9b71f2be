// Package presolve implements a presolver/postsolver for linear and
// mixed-integer programs.
//
// Given a problem
//
//	minimize/maximize  c^T x
//	subject to         rlo <= A x <= rup
//	                   clo <= x  <= cup
//	                   x_j integer for j in I
//
// Presolve applies a sequence of semantics-preserving reductions to produce
// a smaller equivalent problem, returns that reduced problem to the caller
// for an external solver to solve, and then expands any optimal solution of
// the reduced problem back into a primal/dual solution and basis of the
// original problem.
//
// The reductions themselves (fixed variables, doubleton and slack-doubleton
// elimination, forcing constraints, implied-free substitution, duplicate
// row/column detection, dual-sign elimination, and the final zero/empty
// cleanup) are described in the doc comments of the rule_* files. The solver itself, tolerancing policy, and logging/CLI glue are
// external collaborators reached through the Problem and MessageHandler
// interfaces; this package never solves an LP on its own.
package presolve
