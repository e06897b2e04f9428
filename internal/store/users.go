package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/medvault/booking-api/internal/models"
)

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	_, err := s.users.InsertOne(ctx, u)
	return wrapErr(err)
}
