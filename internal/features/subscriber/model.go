package subscriber

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Type string

const (
	TypeWater       Type = "su"
	TypeElectricity Type = "elektrik"
	TypeDues        Type = "aidat"
)

func (t Type) Valid() bool {
	switch t {
	case TypeWater, TypeElectricity, TypeDues:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "aktif"
	StatusClosed Status = "kapali"
)

// Subscriber is a person's utility subscription. SubscriptionNo is the
// meter or contract number and is unique per type.
type Subscriber struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PersonID       primitive.ObjectID `bson:"kisi_id" json:"kisi_id"`
	Type           Type               `bson:"aboneTuru" json:"aboneTuru"`
	SubscriptionNo string             `bson:"aboneNo" json:"aboneNo"`
	Status         Status             `bson:"durum" json:"durum"`
	StartDate      time.Time          `bson:"baslangicTarihi" json:"baslangicTarihi"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
