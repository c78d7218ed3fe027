package permission

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Entry is a single permission grant. Legacy data carries two shapes in
// the same array: a bare code string ("borclar_ekleme") or a document
// with modul/islem fields. Entry is the tagged form of that union; the
// custom (un)marshalers keep the wire format unchanged.
type Entry struct {
	Kod     string `json:"kod,omitempty" bson:"kod,omitempty"`
	Modul   string `json:"modul,omitempty" bson:"modul,omitempty"`
	Islem   string `json:"islem,omitempty" bson:"islem,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty" bson:"isAdmin,omitempty"`
}

// IsCode reports whether the entry is a plain permission code
func (e Entry) IsCode() bool {
	return e.Kod != ""
}

// IsModuleAction reports whether the entry grants a module/action pair
func (e Entry) IsModuleAction() bool {
	return e.Modul != "" && e.Islem != ""
}

// entryDoc avoids marshal recursion on the document form
type entryDoc struct {
	Kod     string `json:"kod,omitempty" bson:"kod,omitempty"`
	Modul   string `json:"modul,omitempty" bson:"modul,omitempty"`
	Islem   string `json:"islem,omitempty" bson:"islem,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty" bson:"isAdmin,omitempty"`
}

func (e *Entry) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeString {
		var kod string
		if err := bson.UnmarshalValue(t, data, &kod); err != nil {
			return err
		}
		*e = Entry{Kod: kod}
		return nil
	}

	var doc entryDoc
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*e = Entry(doc)
	return nil
}

func (e Entry) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if e.IsCode() && !e.IsModuleAction() && !e.IsAdmin {
		return bson.MarshalValue(e.Kod)
	}
	return bson.MarshalValue(entryDoc(e))
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var kod string
		if err := json.Unmarshal(data, &kod); err != nil {
			return err
		}
		*e = Entry{Kod: kod}
		return nil
	}

	var doc entryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*e = Entry(doc)
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.IsCode() && !e.IsModuleAction() && !e.IsAdmin {
		return json.Marshal(e.Kod)
	}
	return json.Marshal(entryDoc(e))
}

// Role is the evaluation snapshot of a role: only what the evaluator
// needs, already loaded in memory.
type Role struct {
	ID          string
	Name        string
	IsAdmin     bool
	Permissions []Entry
}

// Subject is the evaluation snapshot of a user. Roles are populated by
// the service before any check runs; the evaluator itself never touches
// the database.
type Subject struct {
	ID          string
	Email       string
	LegacyRole  string // old data kept a plain role string on the user
	Roles       []Role
	Permissions []Entry // direct grants on the user, in addition to roles
}
