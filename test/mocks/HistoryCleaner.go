package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// HistoryCleaner is a mock type for the HistoryCleaner type
type HistoryCleaner struct {
	mock.Mock
}

// CleanOldHistory provides a mock function with given fields: ctx, keepDays
func (_m *HistoryCleaner) CleanOldHistory(ctx context.Context, keepDays int) (int64, error) {
	ret := _m.Called(ctx, keepDays)

	if len(ret) == 0 {
		panic("no return value specified for CleanOldHistory")
	}

	if rf, ok := ret.Get(0).(func(context.Context, int) (int64, error)); ok {
		return rf(ctx, keepDays)
	}

	return ret.Get(0).(int64), ret.Error(1)
}

// NewHistoryCleaner creates a new instance of HistoryCleaner. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewHistoryCleaner(t interface {
	mock.TestingT
	Cleanup(func())
}) *HistoryCleaner {
	mock := &HistoryCleaner{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
