package mocks

import (
	context "context"
	time "time"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// AlertGenerator is a mock type for the AlertGenerator type
type AlertGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, thresholdPct, lookback
func (_m *AlertGenerator) Generate(ctx context.Context, thresholdPct float64, lookback time.Duration) ([]models.Alert, error) {
	ret := _m.Called(ctx, thresholdPct, lookback)

	if len(ret) == 0 {
		panic("no return value specified for Generate")
	}

	var r0 []models.Alert
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, float64, time.Duration) ([]models.Alert, error)); ok {
		return rf(ctx, thresholdPct, lookback)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Alert)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewAlertGenerator creates a new instance of AlertGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAlertGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *AlertGenerator {
	mock := &AlertGenerator{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
