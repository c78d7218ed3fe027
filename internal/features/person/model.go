package person

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person is the identity record everything else points at. Members and
// subscribers reference a Person; the Person itself carries no
// membership state.
type Person struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"ad" json:"ad"`
	LastName   string             `bson:"soyad" json:"soyad"`
	NationalID string             `bson:"tcKimlikNo" json:"tcKimlikNo"`
	Phone      string             `bson:"telefon,omitempty" json:"telefon,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Address    string             `bson:"adres,omitempty" json:"adres,omitempty"`
	BirthDate  *time.Time         `bson:"dogumTarihi,omitempty" json:"dogumTarihi,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
