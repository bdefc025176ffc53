package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Notifier is a mock type for the Notifier type
type Notifier struct {
	mock.Mock
}

// NotifyAlerts provides a mock function with given fields: ctx, alerts
func (_m *Notifier) NotifyAlerts(ctx context.Context, alerts []models.Alert) error {
	ret := _m.Called(ctx, alerts)

	if len(ret) == 0 {
		panic("no return value specified for NotifyAlerts")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []models.Alert) error); ok {
		r0 = rf(ctx, alerts)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewNotifier creates a new instance of Notifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	mock := &Notifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
