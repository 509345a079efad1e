package gateway

import (
	"context"
	"fmt"

	"boxoffice/entity"
)

type IdentityClient struct {
	backend *Backend
}

func NewIdentityClient(backend *Backend) IdentityClient {
	return IdentityClient{backend: backend}
}

// Me asks the backend who the session belongs to. A response without a
// user ID counts as no identity.
func (c IdentityClient) Me(ctx context.Context) (entity.Identity, error) {
	var identity entity.Identity
	if err := c.backend.do(ctx, "GET", "/api/users/me", nil, &identity); err != nil {
		return entity.Identity{}, fmt.Errorf("could not fetch identity: %w", err)
	}

	if !identity.Valid() {
		return entity.Identity{}, fmt.Errorf("backend returned no identity")
	}

	return identity, nil
}
