package gateway

import (
	"context"
	"sync"

	"boxoffice/entity"
)

type PaymentProviderMock struct {
	mock sync.Mutex

	// Result is returned for every checkout. If Result.PaymentID is left
	// empty and Result.Code is empty, the mock echoes the requested
	// payment ID back, mimicking a provider success.
	Result entity.PaymentResult
	Err    error

	// Release, when set, blocks every checkout until it is closed. Used
	// to hold an attempt in flight.
	Release chan struct{}

	Requests []entity.PaymentRequest
}

func (m *PaymentProviderMock) RequestPayment(ctx context.Context, request entity.PaymentRequest) (entity.PaymentResult, error) {
	m.mock.Lock()
	m.Requests = append(m.Requests, request)
	release := m.Release
	m.mock.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return entity.PaymentResult{}, ctx.Err()
		}
	}

	m.mock.Lock()
	defer m.mock.Unlock()

	if m.Err != nil {
		return entity.PaymentResult{}, m.Err
	}

	result := m.Result
	if result.PaymentID == "" && result.Code == "" {
		result.PaymentID = request.PaymentID
	}
	return result, nil
}

func (m *PaymentProviderMock) RequestCount() int {
	m.mock.Lock()
	defer m.mock.Unlock()
	return len(m.Requests)
}