package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role tags carried by tokens and stored on every principal document.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is a patient account. Email is unique within the users collection only;
// the same address may also exist as a doctor or admin.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role     string             `bson:"role" json:"role"`
	Photo    string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Gender   string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
}
