package demo

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/ideadesk/internal/domain"
	"github.com/aussiebroadwan/ideadesk/pkg/cryptox"
)

type authSource struct{ s *Source }

func (s *Source) userIndex(id domain.ID) int {
	for i, acc := range s.users {
		if acc.user.ID == id {
			return i
		}
	}
	return -1
}

func (a authSource) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	s := a.s
	if err := s.wait(ctx); err != nil {
		return domain.LoginResult{}, err
	}
	if strings.TrimSpace(creds.Email) == "" {
		return domain.LoginResult{}, invalid("email", msgRequired)
	}
	if creds.Password == "" {
		return domain.LoginResult{}, invalid("password", msgRequired)
	}

	s.mu.Lock()
	var acc *account
	for i := range s.users {
		if strings.EqualFold(s.users[i].user.Email, strings.TrimSpace(creds.Email)) {
			acc = &s.users[i]
			break
		}
	}
	var hash string
	var user domain.User
	if acc != nil {
		hash, user = acc.hash, acc.user
	}
	s.mu.Unlock()

	// Argon2 runs outside the lock.
	if hash == "" {
		return domain.LoginResult{}, rejected("Invalid email or password.")
	}
	if err := s.hasher.Verify(creds.Password, hash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.LoginResult{}, rejected("Invalid email or password.")
		}
		return domain.LoginResult{}, err
	}
	if !user.IsActive {
		return domain.LoginResult{}, rejected("User account is disabled.")
	}

	pair, err := cryptox.NewTokenPair()
	if err != nil {
		return domain.LoginResult{}, err
	}

	s.mu.Lock()
	fp := cryptox.Fingerprint(pair.Access)
	s.access[fp] = user.ID
	s.refresh[cryptox.Fingerprint(pair.Refresh)] = grant{userID: user.ID, access: fp}
	if i := s.userIndex(user.ID); i >= 0 {
		s.users[i].user.LastLogin = s.stamp()
		user = s.users[i].user
	}
	s.mu.Unlock()

	return domain.LoginResult{Access: pair.Access, Refresh: pair.Refresh, User: user}, nil
}

// Logout revokes refresh and the access token issued with it.
func (a authSource) Logout(ctx context.Context, refresh string) error {
	s := a.s
	if err := s.wait(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fp := cryptox.Fingerprint(refresh)
	g, ok := s.refresh[fp]
	if !ok {
		return rejected("Token is invalid or expired")
	}
	delete(s.refresh, fp)
	delete(s.access, g.access)
	return nil
}

func (a authSource) CurrentUser(ctx context.Context) (domain.User, error) {
	u, done, err := a.s.enter(ctx)
	if err != nil {
		return domain.User{}, err
	}
	done()
	return u, nil
}
