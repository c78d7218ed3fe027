package debt

import "testing"

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name       string
		face       float64
		totalPaid  float64
		wantKalan  float64
		wantOdendi bool
	}{
		{"Fully paid", 100.00, 100.00, 0.00, true},
		{"Partially paid", 100.00, 40.00, 60.00, false},
		{"Unpaid", 100.00, 0, 100.00, false},
		{"Overpaid clamps to zero", 100.00, 150.00, 0.00, true},
		{"Within one cent tolerance", 100.00, 99.99, 0.01, true},
		{"Two cents short is unpaid", 100.00, 99.98, 0.02, false},
		{"Rounded payment", 10.00, 3.34, 6.66, false},
		{"Float residue rounds away", 0.3, 0.1 + 0.2, 0.00, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kalan, odendi := ComputeBalance(tt.face, tt.totalPaid)
			if kalan != tt.wantKalan {
				t.Errorf("kalan = %v, want %v", kalan, tt.wantKalan)
			}
			if odendi != tt.wantOdendi {
				t.Errorf("odendi = %v, want %v", odendi, tt.wantOdendi)
			}
		})
	}
}

func TestComputeBalanceIdempotent(t *testing.T) {
	k1, o1 := ComputeBalance(250.50, 120.25)
	k2, o2 := ComputeBalance(250.50, 120.25)
	if k1 != k2 || o1 != o2 {
		t.Errorf("recompute diverged: (%v,%v) vs (%v,%v)", k1, o1, k2, o2)
	}
}

func TestComputeBalancePaymentDeleteReversal(t *testing.T) {
	// payments [40, 60] against F=100, then the 60 payment is deleted
	const face = 100.00

	kalanBefore, _ := ComputeBalance(face, 40.00+60.00)
	if kalanBefore != 0 {
		t.Fatalf("kalan before delete = %v, want 0", kalanBefore)
	}

	kalanAfter, odendi := ComputeBalance(face, 40.00)
	if kalanAfter != 60.00 {
		t.Errorf("kalan after delete = %v, want 60.00", kalanAfter)
	}
	if odendi {
		t.Error("odendi must be false after reversal")
	}

	// kalan_after = min(F, kalan_before + A)
	if want := kalanBefore + 60.00; kalanAfter != want && kalanAfter != face {
		t.Errorf("reversal identity violated: got %v", kalanAfter)
	}
}
