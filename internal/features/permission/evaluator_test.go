package permission

import (
	"encoding/json"
	"testing"
)

func subjectWithModuleGrant(modul, islem string) *Subject {
	return &Subject{
		ID:    "u1",
		Email: "uye@example.com",
		Roles: []Role{
			{
				ID:   "r1",
				Name: "muhasebe",
				Permissions: []Entry{
					{Modul: modul, Islem: islem},
				},
			},
		},
	}
}

func TestHasPermissionAdminBypass(t *testing.T) {
	eval := NewEvaluator("admin@dernek.org")

	tests := []struct {
		name    string
		subject *Subject
		kod     string
		want    bool
	}{
		{
			name:    "Admin email with empty roles",
			subject: &Subject{ID: "u1", Email: "admin@dernek.org"},
			kod:     "borclar_silme",
			want:    true,
		},
		{
			name:    "Legacy admin role string",
			subject: &Subject{ID: "u2", Email: "x@y.z", LegacyRole: "admin"},
			kod:     "kisiler_ekleme",
			want:    true,
		},
		{
			name: "Role flagged isAdmin",
			subject: &Subject{
				ID:    "u3",
				Email: "x@y.z",
				Roles: []Role{{ID: "r1", Name: "yonetici", IsAdmin: true}},
			},
			kod:  "odemeler_duzenleme",
			want: true,
		},
		{
			name:    "Non admin without grants",
			subject: &Subject{ID: "u4", Email: "x@y.z"},
			kod:     "borclar_silme",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eval.HasPermission(tt.subject, tt.kod); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasPermissionDenyByDefault(t *testing.T) {
	eval := NewEvaluator("admin@dernek.org")

	if eval.HasPermission(nil, "x") {
		t.Error("nil subject must be denied")
	}
	if eval.HasPermission(&Subject{}, "x") {
		t.Error("empty subject must be denied")
	}
	if eval.HasPermission(&Subject{ID: "u1", Email: "admin@dernek.org"}, "") {
		t.Error("empty code must be denied")
	}
}

func TestHasPermissionCodeMatching(t *testing.T) {
	eval := NewEvaluator("")

	subject := &Subject{
		ID:    "u1",
		Email: "uye@example.com",
		Roles: []Role{
			{ID: "r1", Name: "muhasebe", Permissions: []Entry{{Kod: "borclar_ekleme"}}},
		},
		Permissions: []Entry{{Kod: "raporlar_goruntuleme"}},
	}

	if !eval.HasPermission(subject, "borclar_ekleme") {
		t.Error("role code entry must match")
	}
	if !eval.HasPermission(subject, "raporlar_goruntuleme") {
		t.Error("direct permission entry must match")
	}
	if eval.HasPermission(subject, "borclar_silme") {
		t.Error("unrelated code must not match")
	}
}

func TestHasModulePermissionHierarchy(t *testing.T) {
	eval := NewEvaluator("")
	subject := subjectWithModuleGrant("kisiler", ActionDelete)

	tests := []struct {
		name  string
		modul string
		islem string
		want  bool
	}{
		{"Delete implies view", "kisiler", ActionView, true},
		{"Delete implies create", "kisiler", ActionCreate, true},
		{"Delete implies edit", "kisiler", ActionEdit, true},
		{"Exact match", "kisiler", ActionDelete, true},
		{"No cross module implication", "digerModul", ActionView, false},
		{"Custom is isolated", "kisiler", ActionCustom, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eval.HasModulePermission(subject, tt.modul, tt.islem); got != tt.want {
				t.Errorf("HasModulePermission(%s, %s) = %v, want %v", tt.modul, tt.islem, got, tt.want)
			}
		})
	}

	// the ordering never runs upward
	viewer := subjectWithModuleGrant("kisiler", ActionView)
	if eval.HasModulePermission(viewer, "kisiler", ActionDelete) {
		t.Error("view must not imply delete")
	}

	// custom grants only satisfy custom checks
	custom := subjectWithModuleGrant("kisiler", ActionCustom)
	if !eval.HasModulePermission(custom, "kisiler", ActionCustom) {
		t.Error("custom must match custom")
	}
	if eval.HasModulePermission(custom, "kisiler", ActionView) {
		t.Error("custom must not imply view")
	}
}

func TestImplies(t *testing.T) {
	tests := []struct {
		held      string
		requested string
		want      bool
	}{
		{ActionDelete, ActionView, true},
		{ActionEdit, ActionCreate, true},
		{ActionCreate, ActionView, true},
		{ActionView, ActionView, true},
		{ActionView, ActionCreate, false},
		{ActionCustom, ActionView, false},
		{ActionDelete, ActionCustom, false},
		{ActionCustom, ActionCustom, true},
		{"", ActionView, false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := Implies(tt.held, tt.requested); got != tt.want {
			t.Errorf("Implies(%q, %q) = %v, want %v", tt.held, tt.requested, got, tt.want)
		}
	}
}

func TestCodesFlattening(t *testing.T) {
	eval := NewEvaluator("admin@dernek.org")

	subject := &Subject{
		ID:    "u1",
		Email: "uye@example.com",
		Roles: []Role{
			{ID: "r1", Permissions: []Entry{
				{Kod: "borclar_ekleme"},
				{Modul: "kisiler", Islem: ActionView},
			}},
		},
		Permissions: []Entry{{Kod: "borclar_ekleme"}}, // duplicate on purpose
	}

	codes := eval.Codes(subject)
	want := []string{"borclar_ekleme", "kisiler_goruntuleme"}
	if len(codes) != len(want) {
		t.Fatalf("Codes() = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("Codes()[%d] = %q, want %q", i, codes[i], want[i])
		}
	}

	admin := &Subject{ID: "a", Email: "admin@dernek.org"}
	if got := eval.Codes(admin); len(got) != 1 || got[0] != "*" {
		t.Errorf("admin Codes() = %v, want [*]", got)
	}
}

func TestEntryJSONUnion(t *testing.T) {
	var fromString Entry
	if err := json.Unmarshal([]byte(`"borclar_ekleme"`), &fromString); err != nil {
		t.Fatalf("unmarshal string entry: %v", err)
	}
	if fromString.Kod != "borclar_ekleme" || fromString.IsModuleAction() {
		t.Errorf("string entry decoded wrong: %+v", fromString)
	}

	var fromObject Entry
	if err := json.Unmarshal([]byte(`{"modul":"kisiler","islem":"silme"}`), &fromObject); err != nil {
		t.Fatalf("unmarshal object entry: %v", err)
	}
	if fromObject.Modul != "kisiler" || fromObject.Islem != "silme" {
		t.Errorf("object entry decoded wrong: %+v", fromObject)
	}

	// code entries render back as bare strings
	out, err := json.Marshal(fromString)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"borclar_ekleme"` {
		t.Errorf("code entry rendered as %s", out)
	}
}
