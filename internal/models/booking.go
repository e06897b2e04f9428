package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. Pending is the only initial state; completed and
// cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is an appointment record. Doctor, patient, price, date and time are
// immutable after creation; only status may change, and only out of pending.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID  primitive.ObjectID `bson:"doctor" json:"doctor"`
	PatientID primitive.ObjectID `bson:"user" json:"user"`
	// Price is the doctor's ticket price in minor units, snapshotted at
	// booking time. Later doctor price changes never touch it.
	Price     int64     `bson:"price" json:"price"`
	Session   string    `bson:"session,omitempty" json:"session,omitempty"`
	Date      string    `bson:"appointmentDate" json:"appointmentDate"` // 2006-01-02
	Time      string    `bson:"appointmentTime" json:"appointmentTime"` // 15:04
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PatientBooking is a booking enriched with its doctor's public summary, the
// shape returned by the patient's appointment listing.
type PatientBooking struct {
	Booking `bson:",inline"`
	Doctor  DoctorSummary `bson:"doctorInfo" json:"doctorInfo"`
}
