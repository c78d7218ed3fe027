package cashregister

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeCash Type = "nakit"
	TypeBank Type = "banka"
)

func (t Type) Valid() bool {
	return t == TypeCash || t == TypeBank
}

// Register is a cash point payments flow into. Its balance is never
// stored; it is derived from the payments that reference it.
type Register struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"ad" json:"ad"`
	Type        Type               `bson:"tur" json:"tur"`
	Description string             `bson:"aciklama,omitempty" json:"aciklama,omitempty"`
	Active      bool               `bson:"aktif" json:"aktif"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// RegisterBalance pairs a register with its derived balance.
type RegisterBalance struct {
	Register Register `json:"kasa"`
	Balance  float64  `json:"bakiye"`
}
