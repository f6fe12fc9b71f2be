package presolve

import "testing"

// TestNewProblemStateSizing checks that a freshly allocated ProblemState has
// every per-column/per-row slice sized to ncols/nrows and N/M initialized to
// the full (un-reduced) dimensions.
func TestNewProblemStateSizing(t *testing.T) {
	ps := NewProblemState(3, 2, 5, 1, 1e-7, 1e-7)
	if ps.N0 != 3 || ps.M0 != 2 || ps.Nelems0 != 5 {
		t.Fatalf("N0,M0,Nelems0 = %d,%d,%d, want 3,2,5", ps.N0, ps.M0, ps.Nelems0)
	}
	if ps.N != 3 || ps.M != 2 {
		t.Fatalf("N,M = %d,%d, want 3,2 (nothing dropped yet)", ps.N, ps.M)
	}
	if len(ps.CLo) != 3 || len(ps.RLo) != 2 {
		t.Fatalf("CLo/RLo lengths = %d/%d, want 3/2", len(ps.CLo), len(ps.RLo))
	}
	if ps.Status != StatusUnknown {
		t.Errorf("Status = %v, want StatusUnknown", ps.Status)
	}
}

// TestDropColumnIsIdempotent checks that DropColumn only decrements N once
// no matter how many times it is called for the same column.
func TestDropColumnIsIdempotent(t *testing.T) {
	ps := NewProblemState(2, 0, 0, 1, 1e-7, 1e-7)
	ps.DropColumn(0)
	ps.DropColumn(0)
	if ps.N != 1 {
		t.Fatalf("N = %d, want 1 (DropColumn must be idempotent)", ps.N)
	}
	if !ps.ColDropped[0] {
		t.Fatalf("ColDropped[0] = false, want true")
	}
}

// TestDropRowIsIdempotent mirrors TestDropColumnIsIdempotent for rows.
func TestDropRowIsIdempotent(t *testing.T) {
	ps := NewProblemState(0, 2, 0, 1, 1e-7, 1e-7)
	ps.DropRow(1)
	ps.DropRow(1)
	if ps.M != 1 {
		t.Fatalf("M = %d, want 1 (DropRow must be idempotent)", ps.M)
	}
	if !ps.RowDropped[1] {
		t.Fatalf("RowDropped[1] = false, want true")
	}
}

// TestCompactBuildsOriginalIndexMaps checks that Compact builds
// OriginalColumn/OriginalRow in ascending original-index order, skipping
// dropped entries, and returns colNew/rowNew maps that agree with them
// (I5: originalColumn[j] < n0, injective).
func TestCompactBuildsOriginalIndexMaps(t *testing.T) {
	ps := NewProblemState(4, 3, 0, 1, 1e-7, 1e-7)
	ps.DropColumn(1)
	ps.DropRow(0)

	colNew, rowNew := ps.Compact()

	if got, want := ps.OriginalColumn, []int{0, 2, 3}; !intSliceEqual(got, want) {
		t.Fatalf("OriginalColumn = %v, want %v", got, want)
	}
	if got, want := ps.OriginalRow, []int{1, 2}; !intSliceEqual(got, want) {
		t.Fatalf("OriginalRow = %v, want %v", got, want)
	}

	if colNew[1] != -1 {
		t.Errorf("colNew[1] = %d, want -1 (dropped)", colNew[1])
	}
	if colNew[0] != 0 || colNew[2] != 1 || colNew[3] != 2 {
		t.Errorf("colNew = %v, want [0 -1 1 2]", colNew)
	}
	if rowNew[0] != -1 {
		t.Errorf("rowNew[0] = %d, want -1 (dropped)", rowNew[0])
	}
	if rowNew[1] != 0 || rowNew[2] != 1 {
		t.Errorf("rowNew = %v, want [-1 0 1]", rowNew)
	}

	for idx, j := range ps.OriginalColumn {
		if colNew[j] != idx {
			t.Errorf("colNew[%d] = %d, want %d (must invert OriginalColumn)", j, colNew[j], idx)
		}
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
