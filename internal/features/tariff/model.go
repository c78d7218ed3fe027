package tariff

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeMemberDues   Type = "uyelik"
	TypeSubscription Type = "abonelik"
)

func (t Type) Valid() bool {
	return t == TypeMemberDues || t == TypeSubscription
}

// Tariff prices a period. Amount is the flat price; when Formula is
// set it overrides Amount. Scripts receive the member document as
// `uye` and the flat amount as `taban`, and must assign `tutar`.
type Tariff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"ad" json:"ad"`
	Type      Type               `bson:"tur" json:"tur"`
	Amount    float64            `bson:"tutar" json:"tutar"`
	Year      int                `bson:"yil" json:"yil"`
	Formula   string             `bson:"formul,omitempty" json:"formul,omitempty"`
	Active    bool               `bson:"aktif" json:"aktif"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
