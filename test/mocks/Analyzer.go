package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Analyzer is a mock type for the Analyzer type
type Analyzer struct {
	mock.Mock
}

// Analyze provides a mock function with given fields: ctx, filter, windowDays
func (_m *Analyzer) Analyze(ctx context.Context, filter models.PriceFilter, windowDays int) (*models.TrendReport, error) {
	ret := _m.Called(ctx, filter, windowDays)

	if len(ret) == 0 {
		panic("no return value specified for Analyze")
	}

	var r0 *models.TrendReport
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.PriceFilter, int) (*models.TrendReport, error)); ok {
		return rf(ctx, filter, windowDays)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TrendReport)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Compare provides a mock function with given fields: ctx, productIDs, windowDays
func (_m *Analyzer) Compare(ctx context.Context, productIDs []string, windowDays int) (*models.Comparison, error) {
	ret := _m.Called(ctx, productIDs, windowDays)

	if len(ret) == 0 {
		panic("no return value specified for Compare")
	}

	var r0 *models.Comparison
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []string, int) (*models.Comparison, error)); ok {
		return rf(ctx, productIDs, windowDays)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Comparison)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewAnalyzer creates a new instance of Analyzer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAnalyzer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Analyzer {
	mock := &Analyzer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
