package mocks

import (
	context "context"
	time "time"

	models "github.com/Houeta/price-cage/internal/models"
	sqlite "github.com/Houeta/price-cage/internal/repository/sqlite"
	mock "github.com/stretchr/testify/mock"
)

// CatalogRepository is a mock type for the CatalogRepository type
type CatalogRepository struct {
	mock.Mock
}

// DeleteEventsBefore provides a mock function with given fields: ctx, before
func (_m *CatalogRepository) DeleteEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	ret := _m.Called(ctx, before)

	if len(ret) == 0 {
		panic("no return value specified for DeleteEventsBefore")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, time.Time) (int64, error)); ok {
		return rf(ctx, before)
	}
	r0 = ret.Get(0).(int64)
	r1 = ret.Error(1)

	return r0, r1
}

// RunInTx provides a mock function with given fields: ctx, fn
func (_m *CatalogRepository) RunInTx(ctx context.Context, fn func(context.Context, sqlite.Store) error) error {
	ret := _m.Called(ctx, fn)

	if len(ret) == 0 {
		panic("no return value specified for RunInTx")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context, sqlite.Store) error) error); ok {
		r0 = rf(ctx, fn)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Stats provides a mock function with given fields: ctx
func (_m *CatalogRepository) Stats(ctx context.Context) (*models.Stats, error) {
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

// NewCatalogRepository creates a new instance of CatalogRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	mock := &CatalogRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
