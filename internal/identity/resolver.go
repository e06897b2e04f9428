// Package identity resolves credentials across the three disjoint account
// classes (doctors, patients, admins). Lookup by email walks the classes in a
// fixed precedence order; when the same address exists in more than one
// class, the earlier class wins and the later ones are unreachable here.
package identity

import (
	"context"
	"errors"
)

// ErrNoAccount is the only miss the resolver reports. A caller guessing the
// wrong role for an id gets this, never a distinct wrong-role error.
var ErrNoAccount = errors.New("account not found")

// Account is the class-independent view of a principal, enough to
// authenticate and mint a token.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// Source is one account class. The store provides one per collection.
type Source interface {
	Role() string
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	AccountByID(ctx context.Context, id string) (*Account, error)
}

// Resolver searches sources in the order they were given.
type Resolver struct {
	sources []Source
}

func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// ByEmail returns the first class containing the email.
func (r *Resolver) ByEmail(ctx context.Context, email string) (*Account, error) {
	for _, s := range r.sources {
		acct, err := s.AccountByEmail(ctx, email)
		if errors.Is(err, ErrNoAccount) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return acct, nil
	}
	return nil, ErrNoAccount
}

// ByID fetches directly from the class implied by the claimed role, with no
// cross-class search.
func (r *Resolver) ByID(ctx context.Context, id, role string) (*Account, error) {
	for _, s := range r.sources {
		if s.Role() == role {
			return s.AccountByID(ctx, id)
		}
	}
	return nil, ErrNoAccount
}

// SearchByID tries every class in precedence order. Used by the
// service-to-service token mint, where the caller knows only the id.
func (r *Resolver) SearchByID(ctx context.Context, id string) (*Account, error) {
	for _, s := range r.sources {
		acct, err := s.AccountByID(ctx, id)
		if errors.Is(err, ErrNoAccount) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return acct, nil
	}
	return nil, ErrNoAccount
}
