package permission

import (
	"slices"
	"sort"
)

// Evaluator answers access questions from role/permission data already
// loaded in memory. All methods are pure reads: no I/O, no panics,
// malformed input resolves to deny.
type Evaluator struct {
	// AdminEmail is the configured superadmin address. A matching
	// subject bypasses every other check. Empty disables the bypass.
	AdminEmail string
}

func NewEvaluator(adminEmail string) *Evaluator {
	return &Evaluator{AdminEmail: adminEmail}
}

// isSuperAdmin checks the bypasses that precede any role traversal
func (e *Evaluator) isSuperAdmin(s *Subject) bool {
	if e.AdminEmail != "" && s.Email == e.AdminEmail {
		return true
	}
	if s.LegacyRole == "admin" {
		return true
	}
	for _, r := range s.Roles {
		if r.IsAdmin {
			return true
		}
	}
	return false
}

// HasPermission reports whether the subject holds the given permission
// code, e.g. "borclar_ekleme".
func (e *Evaluator) HasPermission(s *Subject, kod string) bool {
	if s == nil || kod == "" {
		return false
	}
	if e.isSuperAdmin(s) {
		return true
	}

	for _, r := range s.Roles {
		for _, entry := range r.Permissions {
			if entry.Kod == kod {
				return true
			}
		}
	}

	for _, entry := range s.Permissions {
		if entry.Kod == kod {
			return true
		}
	}

	return false
}

// HasModulePermission reports whether the subject may perform islem on
// modul. A stored higher action level satisfies a lower requested one
// for the same module.
func (e *Evaluator) HasModulePermission(s *Subject, modul, islem string) bool {
	if s == nil || modul == "" || islem == "" {
		return false
	}
	if e.isSuperAdmin(s) {
		return true
	}

	check := func(entries []Entry) bool {
		for _, entry := range entries {
			if !entry.IsModuleAction() {
				continue
			}
			if entry.Modul == modul && Implies(entry.Islem, islem) {
				return true
			}
		}
		return false
	}

	for _, r := range s.Roles {
		if check(r.Permissions) {
			return true
		}
	}
	return check(s.Permissions)
}

// Codes flattens a subject's grants into permission codes for the UI
// guard. Module/action entries are rendered as "<modul>_<islem>".
// Admins get the wildcard.
func (e *Evaluator) Codes(s *Subject) []string {
	if s == nil {
		return nil
	}
	if e.isSuperAdmin(s) {
		return []string{"*"}
	}

	var codes []string
	add := func(entries []Entry) {
		for _, entry := range entries {
			var kod string
			switch {
			case entry.IsCode():
				kod = entry.Kod
			case entry.IsModuleAction():
				kod = entry.Modul + "_" + entry.Islem
			default:
				continue
			}
			if !slices.Contains(codes, kod) {
				codes = append(codes, kod)
			}
		}
	}

	for _, r := range s.Roles {
		add(r.Permissions)
	}
	add(s.Permissions)

	sort.Strings(codes)
	return codes
}
