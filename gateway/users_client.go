package gateway

import (
	"context"
	"fmt"
	"net/http"

	"boxoffice/entity"
)

type UsersClient struct {
	backend *Backend
}

func NewUsersClient(backend *Backend) UsersClient {
	return UsersClient{backend: backend}
}

func (c UsersClient) Profile(ctx context.Context) (entity.Profile, error) {
	var profile entity.Profile
	if err := c.backend.do(ctx, "GET", "/api/users/profile", nil, &profile); err != nil {
		return entity.Profile{}, fmt.Errorf("could not fetch profile: %w", err)
	}
	return profile, nil
}

func (c UsersClient) UpdateProfile(ctx context.Context, update entity.ProfileUpdate) (entity.Profile, error) {
	var profile entity.Profile
	if err := c.backend.do(ctx, "PUT", "/api/users/profile", update, &profile); err != nil {
		return entity.Profile{}, fmt.Errorf("could not update profile: %w", err)
	}
	return profile, nil
}

// Withdraw deletes the account on the backend. The session becomes
// invalid server-side; the next backend call trips the auth interceptor.
func (c UsersClient) Withdraw(ctx context.Context) error {
	if err := c.backend.do(ctx, "DELETE", "/api/users", nil, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("could not withdraw account: %w", err)
	}
	return nil
}
