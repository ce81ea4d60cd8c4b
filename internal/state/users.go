package state

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/internal/resource"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

const (
	KindFetchUsers     = "fetch_users"
	KindActivateUser   = "activate_user"
	KindDeactivateUser = "deactivate_user"
	KindDeleteUser     = "delete_user"
)

type Users struct {
	Users resource.Collection[domain.User] `json:"users"`
}

type UserStats struct {
	Total    int                 `json:"total"`
	Active   int                 `json:"active"`
	Inactive int                 `json:"inactive"`
	ByRole   map[domain.Role]int `json:"by_role"`
}

func (u Users) Stats() UserStats {
	st := UserStats{Total: u.Users.Len(), ByRole: make(map[domain.Role]int)}
	for _, user := range u.Users.Items {
		if user.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
		st.ByRole[user.Role]++
	}
	return st
}

func usersLens(st *Users) *resource.Collection[domain.User] { return &st.Users }

type FetchUsers struct{ Query url.Values }

func (a FetchUsers) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Users, resource.ListOp(KindFetchUsers, usersLens,
		func(ctx context.Context) (apiclient.Page[domain.User], error) {
			return s.src.Users().List(ctx, a.Query)
		}))
}

// Activation and deactivation of one user supersede each other.
func userStatusLane(id domain.ID) string { return "user_status/" + id.String() }

type ActivateUser struct{ ID domain.ID }

func (a ActivateUser) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindActivateUser, a.ID.String(), usersLens,
		func(ctx context.Context) (domain.User, error) {
			return s.src.Users().Activate(ctx, a.ID)
		}, "User activated successfully")
	op.Lane = userStatusLane(a.ID)
	return resource.Dispatch(ctx, s.Users, op)
}

type DeactivateUser struct{ ID domain.ID }

func (a DeactivateUser) dispatch(ctx context.Context, s *Store) *resource.Task {
	op := resource.UpdateOp(KindDeactivateUser, a.ID.String(), usersLens,
		func(ctx context.Context) (domain.User, error) {
			return s.src.Users().Deactivate(ctx, a.ID)
		}, "User deactivated successfully")
	op.Lane = userStatusLane(a.ID)
	return resource.Dispatch(ctx, s.Users, op)
}

type DeleteUser struct{ ID domain.ID }

func (a DeleteUser) dispatch(ctx context.Context, s *Store) *resource.Task {
	return resource.Dispatch(ctx, s.Users, resource.DeleteOp(KindDeleteUser, a.ID.String(), usersLens,
		func(ctx context.Context) error {
			return s.src.Users().Delete(ctx, a.ID)
		}, "User deleted successfully"))
}
