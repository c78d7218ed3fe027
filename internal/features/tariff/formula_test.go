package tariff

import (
	"context"
	"strings"
	"testing"
)

func TestEvaluateFormulaFlatFallback(t *testing.T) {
	got, err := EvaluateFormula(context.Background(), "", 150.00, nil)
	if err != nil {
		t.Fatalf("empty formula: %v", err)
	}
	if got != 150.00 {
		t.Errorf("amount = %v, want 150", got)
	}
}

func TestEvaluateFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		base    float64
		member  map[string]interface{}
		want    float64
		wantErr string
	}{
		{
			name:    "base passthrough",
			formula: "tutar := taban",
			base:    100.00,
			want:    100.00,
		},
		{
			name:    "percentage discount",
			formula: "tutar := taban * 0.8",
			base:    200.00,
			want:    160.00,
		},
		{
			name:    "member field drives price",
			formula: `tutar := taban; if uye.durum == "pasif" { tutar = taban / 2 }`,
			base:    100.00,
			member:  map[string]interface{}{"durum": "pasif"},
			want:    50.00,
		},
		{
			name:    "result rounded",
			formula: "tutar := taban / 3",
			base:    100.00,
			want:    33.33,
		},
		{
			name:    "missing assignment",
			formula: "x := taban * 2",
			base:    100.00,
			wantErr: "did not assign tutar",
		},
		{
			name:    "negative result",
			formula: "tutar := -5",
			base:    100.00,
			wantErr: "negative",
		},
		{
			name:    "syntax error",
			formula: "tutar := ",
			base:    100.00,
			wantErr: "compile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := tt.member
			if member == nil {
				member = map[string]interface{}{}
			}
			got, err := EvaluateFormula(context.Background(), tt.formula, tt.base, member)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("amount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileFormula(t *testing.T) {
	if err := CompileFormula("tutar := taban * 2", 10); err != nil {
		t.Errorf("valid formula rejected: %v", err)
	}
	if err := CompileFormula("tutar := }", 10); err == nil {
		t.Error("broken formula accepted")
	}
}
