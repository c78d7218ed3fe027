package debt

import "go-dernek/pkg/utils"

// PaidTolerance absorbs rounding on the paid flag: a debt with one cent
// or less outstanding counts as settled.
const PaidTolerance = 0.01

// ComputeBalance derives the remaining balance and paid flag from a
// debt's face amount and the sum of its persisted payments.
// Invariant: kalan = max(0, borcTutari - sum(payments)), odendi iff
// kalan <= 0.01.
func ComputeBalance(face, totalPaid float64) (kalan float64, odendi bool) {
	kalan = utils.Round2(face - totalPaid)
	if kalan < 0 {
		kalan = 0
	}
	odendi = kalan <= PaidTolerance
	return kalan, odendi
}
