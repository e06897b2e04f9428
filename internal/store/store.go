// Package store owns the MongoDB collections: the three principal
// collections (users, doctors, admins) and the bookings ledger.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medvault/booking-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Store struct {
	users    *mongo.Collection
	doctors  *mongo.Collection
	admins   *mongo.Collection
	bookings *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:    db.Collection("users"),
		doctors:  db.Collection("doctors"),
		admins:   db.Collection("admins"),
		bookings: db.Collection("bookings"),
	}
}

// EnsureIndexes creates the uniqueness guards the write paths rely on: one
// email per principal collection, and at most one pending booking per
// doctor/date/time slot. The partial filter keeps completed and cancelled
// bookings from blocking a slot forever.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	email := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{s.users, s.doctors, s.admins} {
		if _, err := coll.Indexes().CreateOne(ctx, email); err != nil {
			return fmt.Errorf("email index on %s: %w", coll.Name(), err)
		}
	}

	slot := mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctor", Value: 1},
			{Key: "appointmentDate", Value: 1},
			{Key: "appointmentTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.StatusPending}),
	}
	if _, err := s.bookings.Indexes().CreateOne(ctx, slot); err != nil {
		return fmt.Errorf("slot index on bookings: %w", err)
	}
	return nil
}

func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// parseID maps a malformed hex id to ErrNotFound: to a caller, an id that
// cannot exist and an id that does not exist look the same.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
