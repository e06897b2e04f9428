// Package booking is the appointment ledger: it owns booking records, their
// creation protocol and their status transitions. It talks to the document
// store and to the payment collaborator only through the narrow interfaces
// below so tests can run on in-memory fakes.
package booking

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault/booking-api/internal/models"
	"github.com/medvault/booking-api/internal/payments"
	"github.com/medvault/booking-api/internal/store"
)

const scheduleLayout = "2006-01-02 15:04"

type DoctorDirectory interface {
	DoctorByID(ctx context.Context, id string) (*models.Doctor, error)
}

type PatientDirectory interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type Ledger interface {
	InsertBooking(ctx context.Context, b *models.Booking) error
	BookingByID(ctx context.Context, id string) (*models.Booking, error)
	SetBookingStatus(ctx context.Context, id, from, to string) (*models.Booking, error)
	HasPendingBooking(ctx context.Context, doctorID primitive.ObjectID, date, timeOfDay string) (bool, error)
	BookingsForPatient(ctx context.Context, patientID string) ([]models.PatientBooking, error)
}

// Notifier is told about confirmed bookings after they are persisted.
// Delivery is best-effort and never fails a request.
type Notifier interface {
	BookingConfirmed(patient *models.User, doctor *models.Doctor, b *models.Booking)
}

type Service struct {
	doctors  DoctorDirectory
	patients PatientDirectory
	ledger   Ledger
	checkout payments.CheckoutCreator
	notifier Notifier

	clientURL string
	now       func() time.Time
}

func NewService(doctors DoctorDirectory, patients PatientDirectory, ledger Ledger, checkout payments.CheckoutCreator, notifier Notifier, clientURL string) *Service {
	return &Service{
		doctors:   doctors,
		patients:  patients,
		ledger:    ledger,
		checkout:  checkout,
		notifier:  notifier,
		clientURL: clientURL,
		now:       time.Now,
	}
}

// CheckoutRequest is one booking attempt by an authenticated patient.
type CheckoutRequest struct {
	DoctorID  string
	PatientID string
	Date      string // 2006-01-02
	Time      string // 15:04
}

// CheckoutResult carries the persisted booking and the payment session the
// patient is redirected to.
type CheckoutResult struct {
	Booking *models.Booking   `json:"booking"`
	Session *payments.Session `json:"session"`
}

// Checkout runs the creation protocol. The payment session is created before
// anything is persisted: a collaborator failure leaves no booking behind,
// and a validation failure never reaches the collaborator.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	doctor, err := s.doctors.DoctorByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	patient, err := s.patients.UserByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	if err := s.validateSchedule(req.Date, req.Time); err != nil {
		return nil, err
	}

	taken, err := s.ledger.HasPendingBooking(ctx, doctor.ID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	session, err := s.checkout.CreateCheckout(ctx, payments.CheckoutParams{
		AmountMinor:   doctor.TicketPrice,
		Currency:      "usd",
		Name:          doctor.Name,
		Description:   doctor.Bio,
		ImageURL:      doctor.Photo,
		CustomerEmail: patient.Email,
		ReferenceID:   doctor.ID.Hex(),
		SuccessURL:    s.clientURL + "/checkout-success",
		CancelURL:     s.clientURL + "/doctors/" + doctor.ID.Hex(),
	})
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:        primitive.NewObjectID(),
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		Price:     doctor.TicketPrice,
		Session:   session.ID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.ledger.InsertBooking(ctx, b); err != nil {
		// lost the slot race to a concurrent request after the precheck
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingConfirmed(patient, doctor, b)
	}
	return &CheckoutResult{Booking: b, Session: session}, nil
}

// validateSchedule accepts only a well-formed date/time pair strictly after
// now. This runs once at creation; the schedule is immutable afterwards.
func (s *Service) validateSchedule(date, timeOfDay string) error {
	now := s.now()
	at, err := time.ParseInLocation(scheduleLayout, date+" "+timeOfDay, now.Location())
	if err != nil {
		return ErrInvalidSchedule
	}
	if !at.After(now) {
		return ErrInvalidSchedule
	}
	return nil
}

// Complete moves a pending booking to completed.
func (s *Service) Complete(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusCompleted)
}

// Cancel moves a pending booking to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusCancelled)
}

// transition performs the one guarded write of the state machine: only
// pending bookings move, and only to a terminal state. A write that matches
// nothing is either a missing booking or a terminal one; a second lookup
// tells the two apart.
func (s *Service) transition(ctx context.Context, id, to string) (*models.Booking, error) {
	b, err := s.ledger.SetBookingStatus(ctx, id, models.StatusPending, to)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if _, lookupErr := s.ledger.BookingByID(ctx, id); lookupErr == nil {
		return nil, ErrInvalidTransition
	} else if errors.Is(lookupErr, store.ErrNotFound) {
		return nil, ErrBookingNotFound
	} else {
		return nil, lookupErr
	}
}

// ListForPatient returns all bookings of the patient with doctor summaries.
// An empty list is a normal result, never an error.
func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]models.PatientBooking, error) {
	bookings, err := s.ledger.BookingsForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.PatientBooking{}
	}
	return bookings, nil
}
