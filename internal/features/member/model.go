package member

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusActive  Status = "aktif"
	StatusPassive Status = "pasif"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusPassive
}

// Member ties a person to an organization unit. A person can hold one
// membership per unit.
type Member struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonID       primitive.ObjectID `bson:"kisi_id" json:"kisi_id"`
	OrganizationID primitive.ObjectID `bson:"organizasyon_id" json:"organizasyon_id"`
	MemberNo       string             `bson:"uyeNo" json:"uyeNo"`
	JoinDate       time.Time          `bson:"girisTarihi" json:"girisTarihi"`
	Status         Status             `bson:"durum" json:"durum"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
