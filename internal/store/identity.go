package store

import (
	"context"
	"errors"

	"github.com/medvault/booking-api/internal/identity"
	"github.com/medvault/booking-api/internal/models"
)

// AccountSources exposes the three collections to the identity resolver in
// the fixed precedence order doctors, patients, admins. When one email lives
// in several collections, the earlier class wins at login.
func (s *Store) AccountSources() []identity.Source {
	return []identity.Source{
		doctorAccounts{s},
		patientAccounts{s},
		adminAccounts{s},
	}
}

func mapAccountErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return identity.ErrNoAccount
	}
	return err
}

type doctorAccounts struct{ s *Store }

func (a doctorAccounts) Role() string { return models.RoleDoctor }

func (a doctorAccounts) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	d, err := a.s.DoctorByEmail(ctx, email)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return doctorAccount(d), nil
}

func (a doctorAccounts) AccountByID(ctx context.Context, id string) (*identity.Account, error) {
	d, err := a.s.DoctorByID(ctx, id)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return doctorAccount(d), nil
}

func doctorAccount(d *models.Doctor) *identity.Account {
	return &identity.Account{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         models.RoleDoctor,
	}
}

type patientAccounts struct{ s *Store }

func (a patientAccounts) Role() string { return models.RolePatient }

func (a patientAccounts) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	u, err := a.s.UserByEmail(ctx, email)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return patientAccount(u), nil
}

func (a patientAccounts) AccountByID(ctx context.Context, id string) (*identity.Account, error) {
	u, err := a.s.UserByID(ctx, id)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return patientAccount(u), nil
}

func patientAccount(u *models.User) *identity.Account {
	return &identity.Account{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
		Role:         models.RolePatient,
	}
}

type adminAccounts struct{ s *Store }

func (a adminAccounts) Role() string { return models.RoleAdmin }

func (a adminAccounts) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	ad, err := a.s.AdminByEmail(ctx, email)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return adminAccount(ad), nil
}

func (a adminAccounts) AccountByID(ctx context.Context, id string) (*identity.Account, error) {
	ad, err := a.s.AdminByID(ctx, id)
	if err != nil {
		return nil, mapAccountErr(err)
	}
	return adminAccount(ad), nil
}

func adminAccount(a *models.Admin) *identity.Account {
	return &identity.Account{
		ID:           a.ID.Hex(),
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.Password,
		Role:         models.RoleAdmin,
	}
}
