package gateway

import (
	"context"
	"sync"

	"boxoffice/entity"
)

type ReservationsMock struct {
	mock sync.Mutex

	VerifyErr  error
	BookResult entity.BookingResult
	BookErr    error

	VerifyCalls []entity.PaymentAttempt
	BookCalls   []entity.PaymentAttempt
}

func (m *ReservationsMock) VerifyPayment(ctx context.Context, attempt entity.PaymentAttempt) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.VerifyCalls = append(m.VerifyCalls, attempt)
	return m.VerifyErr
}

func (m *ReservationsMock) Book(ctx context.Context, attempt entity.PaymentAttempt) (entity.BookingResult, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.BookCalls = append(m.BookCalls, attempt)
	if m.BookErr != nil {
		return entity.BookingResult{}, m.BookErr
	}
	return m.BookResult, nil
}

func (m *ReservationsMock) VerifyCount() int {
	m.mock.Lock()
	defer m.mock.Unlock()
	return len(m.VerifyCalls)
}

func (m *ReservationsMock) BookCount() int {
	m.mock.Lock()
	defer m.mock.Unlock()
	return len(m.BookCalls)
}
