package debt

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Debt is an amount owed by a member for a billing period. Field names
// on the wire keep the legacy vocabulary: borcTutari (face amount),
// kalan (remaining), odendi (paid flag).
type Debt struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MemberID    primitive.ObjectID `json:"uye_id" bson:"uye_id"`
	TariffID    primitive.ObjectID `json:"tarife_id,omitempty" bson:"tarife_id,omitempty"`
	Amount      float64            `json:"borcTutari" bson:"borcTutari"`
	Remaining   float64            `json:"kalan" bson:"kalan"`
	Paid        bool               `json:"odendi" bson:"odendi"`
	Year        int                `json:"yil" bson:"yil"`
	Month       int                `json:"ay" bson:"ay"`
	Description string             `json:"aciklama,omitempty" bson:"aciklama,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
