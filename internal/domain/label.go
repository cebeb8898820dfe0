package domain

import "fmt"

// UnitDisplayCode renders the globally unique human-readable identity of a
// unit: compartment code, label number, and zero-padded sequence number,
// e.g. "3F-A-12-03".
func UnitDisplayCode(slotCode string, labelNumber, seqNo int) string {
	return fmt.Sprintf("%s-%d-%02d", slotCode, labelNumber, seqNo)
}
