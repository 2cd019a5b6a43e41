package goquery

// Collapse applies the multiplicity rule shared by every extraction mode:
// zero values normalize to nil (absent), exactly one value normalizes to
// the bare scalar (never a one-element sequence), and two or more values
// stay a sequence in document order.
func Collapse(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
