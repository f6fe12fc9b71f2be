package presolve

import "fmt"

// BasisStatus is the wire-stable basis status of a structural variable or
// row (slack/artificial). Values match the external boundary's encoding
// exactly: AtLower=0, Basic=1, AtUpper=2, Free=3, SuperBasic=4.
type BasisStatus uint8

const (
	AtLower BasisStatus = iota
	Basic
	AtUpper
	Free
	SuperBasic
)

func (b BasisStatus) String() string {
	switch b {
	case AtLower:
		return "AtLower"
	case Basic:
		return "Basic"
	case AtUpper:
		return "AtUpper"
	case Free:
		return "Free"
	case SuperBasic:
		return "SuperBasic"
	default:
		return fmt.Sprintf("BasisStatus(%d)", uint8(b))
	}
}

// PackBasis encodes a slice of BasisStatus into the compact warm-start
// wire format: two bits per entry, packed least-significant-bit first.
// Two bits cannot distinguish all five BasisStatus values; this mirrors
// CoinWarmStartBasis itself, whose wire format only ever carries
// {atLower, basic, atUpper, isFree}. SuperBasic is presolve's own internal
// status (OsiPresolve.cpp's CoinPrePostsolveMatrix::superBasic) and this
// engine never assigns it to a column or row status that reaches
// PackBasis.
func PackBasis(status []BasisStatus) []byte {
	out := make([]byte, (len(status)*2+7)/8)
	for i, s := range status {
		bitpos := uint(i * 2)
		out[bitpos/8] |= byte(s&0x3) << (bitpos % 8)
	}
	return out
}

// UnpackBasis decodes n entries from the compact warm-start wire format
// produced by PackBasis.
func UnpackBasis(data []byte, n int) []BasisStatus {
	out := make([]BasisStatus, n)
	for i := range out {
		bitpos := uint(i * 2)
		b := data[bitpos/8] >> (bitpos % 8)
		out[i] = BasisStatus(b & 0x3)
	}
	return out
}
