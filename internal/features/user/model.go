package user

import (
	"time"

	"go-dernek/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an operator account. LegacyRole carries the plain role
// string older documents stored; new grants live in RoleIDs and the
// direct Permissions array.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password" json:"-"`
	LegacyRole  string               `bson:"role,omitempty" json:"role,omitempty"`
	RoleIDs     []primitive.ObjectID `bson:"roller,omitempty" json:"roller,omitempty"`
	Permissions []permission.Entry   `bson:"izinler,omitempty" json:"izinler,omitempty"`
	Active      bool                 `bson:"aktif" json:"aktif"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
