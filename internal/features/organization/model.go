package organization

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is a unit members belong to. Units form a tree through
// ParentID; the root has a zero parent.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"ad" json:"ad"`
	Slug        string             `bson:"slug" json:"slug"`
	ParentID    primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Description string             `bson:"aciklama,omitempty" json:"aciklama,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
