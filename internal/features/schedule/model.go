package schedule

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule fires a tariff's period dues on a cron expression. Each run
// issues one debt per active member for the month the run falls in.
type Schedule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"ad" json:"ad"`
	TariffID  primitive.ObjectID `bson:"tarife_id" json:"tarife_id"`
	Cron      string             `bson:"cron" json:"cron"`
	Enabled   bool               `bson:"aktif" json:"aktif"`
	LastRun   *time.Time         `bson:"sonCalisma,omitempty" json:"sonCalisma,omitempty"`
	NextRun   *time.Time         `bson:"sonrakiCalisma,omitempty" json:"sonrakiCalisma,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
