package presolve

import (
	"fmt"
	"strings"
)

// PostsolveState is the mutable bundle every Action.Postsolve call extends.
// All slices are sized at the original problem's N0/M0; surviving indices
// are populated by the orchestrator from the solver's reduced solution. A
// rule's undo fills in the entries for the indices it eliminated and may
// also adjust entries of indices that survived it (the reduced cost of a
// retained column, a clamped primal value, the kept column of a duplicate
// pair).
type PostsolveState struct {
	Matrix *PostsolveMatrix

	ColLo, ColUp, Cost []float64
	Sol, RCosts        []float64
	ColStat            []BasisStatus

	RLo, RUp, Acts, RowDuals []float64
	RowStat                  []BasisStatus

	ObjSense       float64
	DObias         float64
	ZTolZB, ZTolDJ float64
}

// Action (C4) is one undo record. Each concrete rule record implements
// this by capturing exactly the data its undo needs.
type Action interface {
	Name() string
	Postsolve(st *PostsolveState) error
}

type logNode struct {
	action Action
	next   *logNode
}

// Log is the action log: an append-only, singly linked, reverse-
// chronological chain. Push prepends, so walking from the head visits
// records newest first -- exactly the order Postsolve needs.
type Log struct {
	head *logNode
	len  int
}

// NewLog returns an empty action log.
func NewLog() *Log {
	return &Log{}
}

// Push prepends a record; the head pointer is swapped so the record
// becomes the new most-recent entry.
func (l *Log) Push(a Action) {
	l.head = &logNode{action: a, next: l.head}
	l.len++
}

// Len reports how many records have been pushed.
func (l *Log) Len() int {
	return l.len
}

// Walk invokes f on every record newest-first, stopping at the first error.
func (l *Log) Walk(f func(Action) error) error {
	for n := l.head; n != nil; n = n.next {
		if err := f(n.action); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the log newest-first, one record name per line, for golden
// comparisons in tests (see actionlog_test.go's use of go-difflib).
func (l *Log) Dump() string {
	var b strings.Builder
	i := 0
	for n := l.head; n != nil; n = n.next {
		fmt.Fprintf(&b, "%d: %s\n", i, n.action.Name())
		i++
	}
	return b.String()
}
