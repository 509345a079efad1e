package gateway

import (
	"context"
	"sync"

	"boxoffice/entity"
)

type IdentityMock struct {
	mock sync.Mutex

	Identity entity.Identity
	Err      error

	MeCalls int
}

func (m *IdentityMock) Me(ctx context.Context) (entity.Identity, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.MeCalls++

	if m.Err != nil {
		return entity.Identity{}, m.Err
	}
	return m.Identity, nil
}
