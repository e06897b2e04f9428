package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/medvault/booking-api/internal/models"
)

func (s *Store) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := s.admins.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, wrapErr(err)
	}
	return &a, nil
}

func (s *Store) AdminByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var a models.Admin
	if err := s.admins.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		return nil, wrapErr(err)
	}
	return &a, nil
}

func (s *Store) InsertAdmin(ctx context.Context, a *models.Admin) error {
	_, err := s.admins.InsertOne(ctx, a)
	return wrapErr(err)
}
