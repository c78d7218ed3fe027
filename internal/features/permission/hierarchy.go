package permission

// Action levels. Holding a higher level implies all lower levels for the
// same module; "ozel" sits outside the ordering entirely.
const (
	ActionView   = "goruntuleme"
	ActionCreate = "ekleme"
	ActionEdit   = "duzenleme"
	ActionDelete = "silme"
	ActionCustom = "ozel"
)

// Actions lists the full action vocabulary
var Actions = []string{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionCustom}

var actionLevels = map[string]int{
	ActionView:   1,
	ActionCreate: 2,
	ActionEdit:   3,
	ActionDelete: 4,
}

// Implies reports whether holding the "held" action satisfies a check
// for the "requested" action on the same module.
func Implies(held, requested string) bool {
	if held == requested {
		return held != ""
	}
	if held == ActionCustom || requested == ActionCustom {
		return false
	}
	h, ok := actionLevels[held]
	if !ok {
		return false
	}
	r, ok := actionLevels[requested]
	if !ok {
		return false
	}
	return h >= r
}
