package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medvault/booking-api/internal/models"
)

// InsertBooking persists a new booking. A duplicate-key error here means a
// concurrent request won the race for the same pending doctor/slot.
func (s *Store) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := s.bookings.InsertOne(ctx, b)
	return wrapErr(err)
}

func (s *Store) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Booking
	if err := s.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, wrapErr(err)
	}
	return &b, nil
}

// SetBookingStatus atomically moves a booking from one status to another.
// The status filter makes the write a no-op when the booking is not in the
// expected state, which surfaces as ErrNotFound for the caller to interpret.
func (s *Store) SetBookingStatus(ctx context.Context, id, from, to string) (*models.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Booking
	err = s.bookings.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": from},
		bson.M{"$set": bson.M{"status": to}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &b, nil
}

// HasPendingBooking reports whether the doctor already has a pending booking
// at the given date and time.
func (s *Store) HasPendingBooking(ctx context.Context, doctorID primitive.ObjectID, date, timeOfDay string) (bool, error) {
	n, err := s.bookings.CountDocuments(ctx, bson.M{
		"doctor":          doctorID,
		"appointmentDate": date,
		"appointmentTime": timeOfDay,
		"status":          models.StatusPending,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BookingsForPatient returns every booking of the patient, each joined with
// its doctor's public summary. The doctor's password hash is projected away
// before it ever leaves the database.
func (s *Store) BookingsForPatient(ctx context.Context, patientID string) ([]models.PatientBooking, error) {
	oid, err := parseID(patientID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": oid}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "doctors",
			"localField":   "doctor",
			"foreignField": "_id",
			"as":           "doctorInfo",
		}}},
		bson.D{{Key: "$unwind", Value: "$doctorInfo"}},
		bson.D{{Key: "$project", Value: bson.M{"doctorInfo.password": 0}}},
	}

	cursor, err := s.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.PatientBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
