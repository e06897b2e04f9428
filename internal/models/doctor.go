package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Doctor approval states set by admins.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

// Doctor is a practitioner account. TicketPrice is the consultation price in
// minor currency units (cents) and is snapshotted onto each booking.
type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	About          string             `bson:"about,omitempty" json:"about,omitempty"`
	TicketPrice    int64              `bson:"ticketPrice" json:"ticketPrice"`
	IsApproved     string             `bson:"isApproved" json:"isApproved"`
}

// Summary strips a doctor down to the fields safe to embed in booking listings.
func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:             d.ID,
		Name:           d.Name,
		Photo:          d.Photo,
		Specialization: d.Specialization,
		TicketPrice:    d.TicketPrice,
	}
}

// DoctorSummary is the doctor view embedded in a patient's booking list.
// It never carries the password hash.
type DoctorSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Photo          string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	TicketPrice    int64              `bson:"ticketPrice" json:"ticketPrice"`
}
