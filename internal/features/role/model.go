package role

import (
	"time"

	"go-dernek/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a named bundle of permission entries. System roles ship with
// the seed data and cannot be deleted.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	IsAdmin     bool               `bson:"isAdmin" json:"isAdmin"`
	SystemRole  bool               `bson:"systemRole" json:"systemRole"`
	Permissions []permission.Entry `bson:"izinler" json:"izinler"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Snapshot converts the stored document into the evaluation form.
func (r *Role) Snapshot() permission.Role {
	return permission.Role{
		ID:          r.ID.Hex(),
		Name:        r.Name,
		IsAdmin:     r.IsAdmin,
		Permissions: r.Permissions,
	}
}
