package demo

import (
	"context"
	"net/url"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

type userSource struct{ s *Source }

// staff reports whether u may manage other users.
func staff(u domain.User) bool {
	return u.Role == domain.RoleAdmin || u.Role == domain.RoleManager
}

func (us userSource) List(ctx context.Context, query url.Values) (apiclient.Page[domain.User], error) {
	caller, done, err := us.s.enter(ctx)
	if err != nil {
		return apiclient.Page[domain.User]{}, err
	}
	defer done()

	if !staff(caller) {
		return apiclient.Page[domain.User]{}, forbidden()
	}

	role := domain.Role(query.Get("role"))
	out := make([]domain.User, 0, len(us.s.users))
	for _, acc := range us.s.users {
		if role == "" || acc.user.Role == role {
			out = append(out, acc.user)
		}
	}
	return apiclient.Page[domain.User]{Items: out, Count: len(out)}, nil
}

func (us userSource) Activate(ctx context.Context, id domain.ID) (domain.User, error) {
	return us.setActive(ctx, id, true)
}

func (us userSource) Deactivate(ctx context.Context, id domain.ID) (domain.User, error) {
	return us.setActive(ctx, id, false)
}

func (us userSource) setActive(ctx context.Context, id domain.ID, active bool) (domain.User, error) {
	caller, done, err := us.s.enter(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer done()

	if !staff(caller) {
		return domain.User{}, forbidden()
	}
	if caller.ID == id && !active {
		return domain.User{}, rejected("You cannot deactivate your own account.")
	}

	i := us.s.userIndex(id)
	if i < 0 {
		return domain.User{}, notFound()
	}
	us.s.users[i].user.IsActive = active
	return us.s.users[i].user, nil
}

func (us userSource) Delete(ctx context.Context, id domain.ID) error {
	caller, done, err := us.s.enter(ctx)
	if err != nil {
		return err
	}
	defer done()

	if caller.Role != domain.RoleAdmin {
		return forbidden()
	}
	if caller.ID == id {
		return rejected("You cannot delete your own account.")
	}

	i := us.s.userIndex(id)
	if i < 0 {
		return notFound()
	}
	us.s.users = removeAt(us.s.users, i)
	for fp, uid := range us.s.access {
		if uid == id {
			delete(us.s.access, fp)
		}
	}
	for fp, g := range us.s.refresh {
		if g.userID == id {
			delete(us.s.refresh, fp)
		}
	}
	return nil
}
