package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medvault/booking-api/internal/models"
)

// DoctorUpdate lists the mutable doctor fields. Email is deliberately
// absent: it is the lookup key and never changes after provisioning.
// Password, when set, must already be hashed.
type DoctorUpdate struct {
	Name           *string
	Phone          *string
	Photo          *string
	Specialization *string
	Bio            *string
	About          *string
	TicketPrice    *int64
	Password       *string
}

func (u DoctorUpdate) setDoc() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Photo != nil {
		set["photo"] = *u.Photo
	}
	if u.Specialization != nil {
		set["specialization"] = *u.Specialization
	}
	if u.Bio != nil {
		set["bio"] = *u.Bio
	}
	if u.About != nil {
		set["about"] = *u.About
	}
	if u.TicketPrice != nil {
		set["ticketPrice"] = *u.TicketPrice
	}
	if u.Password != nil {
		set["password"] = *u.Password
	}
	return set
}

func (s *Store) DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.doctors.FindOne(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		return nil, wrapErr(err)
	}
	return &d, nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var d models.Doctor
	if err := s.doctors.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, wrapErr(err)
	}
	return &d, nil
}

func (s *Store) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	_, err := s.doctors.InsertOne(ctx, d)
	return wrapErr(err)
}

// ListDoctors returns approved doctors, optionally filtered by a
// case-insensitive name or specialization match.
func (s *Store) ListDoctors(ctx context.Context, query string) ([]models.Doctor, error) {
	filter := bson.M{"isApproved": models.ApprovalApproved}
	if query != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"specialization": bson.M{"$regex": query, "$options": "i"}},
		}
	}

	cursor, err := s.doctors.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *Store) UpdateDoctor(ctx context.Context, id string, upd DoctorUpdate) (*models.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := upd.setDoc()
	if len(set) == 0 {
		return s.DoctorByID(ctx, id)
	}

	var d models.Doctor
	err = s.doctors.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &d, nil
}

func (s *Store) ApproveDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var d models.Doctor
	err = s.doctors.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isApproved": models.ApprovalApproved}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &d, nil
}
