package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	merger "github.com/Houeta/price-cage/internal/services/merger"
	mock "github.com/stretchr/testify/mock"
)

// Merger is a mock type for the Merger type
type Merger struct {
	mock.Mock
}

// Merge provides a mock function with given fields: ctx, record
func (_m *Merger) Merge(ctx context.Context, record *models.ProductRecord) (merger.Outcome, error) {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for Merge")
	}

	if rf, ok := ret.Get(0).(func(context.Context, *models.ProductRecord) (merger.Outcome, error)); ok {
		return rf(ctx, record)
	}

	return ret.Get(0).(merger.Outcome), ret.Error(1)
}

// NewMerger creates a new instance of Merger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMerger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Merger {
	mock := &Merger{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
