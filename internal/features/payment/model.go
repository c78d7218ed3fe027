package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Method is the payment channel
type Method string

const (
	MethodCash     Method = "nakit"
	MethodTransfer Method = "havale"
	MethodCard     Method = "kredi_karti"
	MethodOther    Method = "diger"
)

// Valid reports whether the method is part of the fixed vocabulary
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodOther:
		return true
	}
	return false
}

// ReceiptMeta is the stored metadata of an uploaded receipt
type ReceiptMeta struct {
	Filename string `json:"filename" bson:"filename"`
	Path     string `json:"path" bson:"path"`
	Size     int64  `json:"size" bson:"size"`
}

// Payment is a recorded payment applied against a debt. Many payments
// may reference one debt; the amount is rounded to 2 decimals at write
// time (wire name: odemeTutari).
type Payment struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DebtID     primitive.ObjectID `json:"borc_id" bson:"borc_id"`
	MemberID   primitive.ObjectID `json:"uye_id" bson:"uye_id"`
	RegisterID primitive.ObjectID `json:"kasa_id" bson:"kasa_id"`
	Amount     float64            `json:"odemeTutari" bson:"odemeTutari"`
	Method     Method             `json:"odemeTuru" bson:"odemeTuru"`
	PaidAt     time.Time          `json:"odemeTarihi" bson:"odemeTarihi"`
	Receipt    *ReceiptMeta       `json:"makbuz,omitempty" bson:"makbuz,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
