package handlers

import (
	"context"

	"github.com/medvault/booking-api/internal/auth"
	"github.com/medvault/booking-api/internal/booking"
	"github.com/medvault/booking-api/internal/identity"
	"github.com/medvault/booking-api/internal/models"
	"github.com/medvault/booking-api/internal/store"
)

// PatientAccounts is the slice of the store signup needs. Signup consults
// only the patient collection; doctors and admins are provisioned out of
// band.
type PatientAccounts interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
}

// DoctorDirectory is the slice of the store the doctor endpoints need.
type DoctorDirectory interface {
	DoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	ListDoctors(ctx context.Context, query string) ([]models.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, upd store.DoctorUpdate) (*models.Doctor, error)
	ApproveDoctor(ctx context.Context, id string) (*models.Doctor, error)
}

// Handler holds the wired services behind every route.
type Handler struct {
	Resolver *identity.Resolver
	Issuer   *auth.Issuer
	Patients PatientAccounts
	Doctors  DoctorDirectory
	Bookings *booking.Service
}

func NewHandler(resolver *identity.Resolver, issuer *auth.Issuer, patients PatientAccounts, doctors DoctorDirectory, bookings *booking.Service) *Handler {
	return &Handler{
		Resolver: resolver,
		Issuer:   issuer,
		Patients: patients,
		Doctors:  doctors,
		Bookings: bookings,
	}
}
