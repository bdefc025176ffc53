package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Store is a mock type for the Store type
type Store struct {
	mock.Mock
}

// AppendPriceEvent provides a mock function with given fields: ctx, event
func (_m *Store) AppendPriceEvent(ctx context.Context, event *models.PriceHistoryEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for AppendPriceEvent")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.PriceHistoryEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindOrCreateBrand provides a mock function with given fields: ctx, name
func (_m *Store) FindOrCreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	ret := _m.Called(ctx, name)

	if len(ret) == 0 {
		panic("no return value specified for FindOrCreateBrand")
	}

	var r0 *models.Brand
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Brand, error)); ok {
		return rf(ctx, name)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Brand)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// FindOrCreateWebsite provides a mock function with given fields: ctx, domain
func (_m *Store) FindOrCreateWebsite(ctx context.Context, domain string) (*models.Website, error) {
	ret := _m.Called(ctx, domain)

	if len(ret) == 0 {
		panic("no return value specified for FindOrCreateWebsite")
	}

	var r0 *models.Website
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Website, error)); ok {
		return rf(ctx, domain)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Website)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// FindProduct provides a mock function with given fields: ctx, websiteID, sourceURL
func (_m *Store) FindProduct(ctx context.Context, websiteID string, sourceURL string) (*models.StoredProduct, error) {
	ret := _m.Called(ctx, websiteID, sourceURL)

	if len(ret) == 0 {
		panic("no return value specified for FindProduct")
	}

	var r0 *models.StoredProduct
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) (*models.StoredProduct, error)); ok {
		return rf(ctx, websiteID, sourceURL)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredProduct)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// UpsertProduct provides a mock function with given fields: ctx, product
func (_m *Store) UpsertProduct(ctx context.Context, product *models.StoredProduct) (*models.StoredProduct, error) {
	ret := _m.Called(ctx, product)

	if len(ret) == 0 {
		panic("no return value specified for UpsertProduct")
	}

	var r0 *models.StoredProduct
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.StoredProduct) (*models.StoredProduct, error)); ok {
		return rf(ctx, product)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.StoredProduct)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewStore creates a new instance of Store. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *Store {
	mock := &Store{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
