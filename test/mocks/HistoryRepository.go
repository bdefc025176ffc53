package mocks

import (
	context "context"
	time "time"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// HistoryRepository is a mock type for the HistoryRepository type
type HistoryRepository struct {
	mock.Mock
}

// QueryPriceEvents provides a mock function with given fields: ctx, filter, from, to
func (_m *HistoryRepository) QueryPriceEvents(ctx context.Context, filter models.PriceFilter, from time.Time, to time.Time) ([]models.PriceHistoryEvent, error) {
	ret := _m.Called(ctx, filter, from, to)

	if len(ret) == 0 {
		panic("no return value specified for QueryPriceEvents")
	}

	var r0 []models.PriceHistoryEvent
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.PriceFilter, time.Time, time.Time) ([]models.PriceHistoryEvent, error)); ok {
		return rf(ctx, filter, from, to)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PriceHistoryEvent)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewHistoryRepository creates a new instance of HistoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewHistoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *HistoryRepository {
	mock := &HistoryRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
