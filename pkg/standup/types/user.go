package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Timezone Timezone           `bson:"timezone" json:"timezone"`
}

// Timezone keeps the IANA identifier next to its display label, as stored by
// the frontend's timezone picker.
type Timezone struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"` // IANA identifier, e.g. "America/Sao_Paulo"
}
