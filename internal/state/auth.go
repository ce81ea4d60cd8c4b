package state

import (
	"context"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
)

type Login struct{ Credentials domain.Credentials }

func (a Login) dispatch(ctx context.Context, s *Store) *resource.Task {
	return s.Session.Login(ctx, a.Credentials)
}

type Logout struct{}

func (Logout) dispatch(ctx context.Context, s *Store) *resource.Task {
	return s.Session.Logout(ctx)
}

type GetCurrentUser struct{}

func (GetCurrentUser) dispatch(ctx context.Context, s *Store) *resource.Task {
	return s.Session.GetCurrentUser(ctx)
}
