package mocks

import (
	context "context"
	time "time"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// AlertRepository is a mock type for the AlertRepository type
type AlertRepository struct {
	mock.Mock
}

// ListActiveProducts provides a mock function with given fields: ctx
func (_m *AlertRepository) ListActiveProducts(ctx context.Context) ([]models.StoredProduct, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListActiveProducts")
	}

	var r0 []models.StoredProduct
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]models.StoredProduct, error)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.StoredProduct)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// RecentPriceEvents provides a mock function with given fields: ctx, productID, since, limit
func (_m *AlertRepository) RecentPriceEvents(ctx context.Context, productID string, since time.Time, limit int) ([]models.PriceHistoryEvent, error) {
	ret := _m.Called(ctx, productID, since, limit)

	if len(ret) == 0 {
		panic("no return value specified for RecentPriceEvents")
	}

	var r0 []models.PriceHistoryEvent
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, time.Time, int) ([]models.PriceHistoryEvent, error)); ok {
		return rf(ctx, productID, since, limit)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PriceHistoryEvent)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewAlertRepository creates a new instance of AlertRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAlertRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AlertRepository {
	mock := &AlertRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
