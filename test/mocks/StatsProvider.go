package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// StatsProvider is a mock type for the StatsProvider type
type StatsProvider struct {
	mock.Mock
}

// Stats provides a mock function with given fields: ctx
func (_m *StatsProvider) Stats(ctx context.Context) (*models.Stats, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Stats")
	}

	var r0 *models.Stats
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (*models.Stats, error)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Stats)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewStatsProvider creates a new instance of StatsProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStatsProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsProvider {
	mock := &StatsProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
