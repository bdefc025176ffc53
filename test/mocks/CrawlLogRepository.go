package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// CrawlLogRepository is a mock type for the CrawlLogRepository type
type CrawlLogRepository struct {
	mock.Mock
}

// SaveCrawlLog provides a mock function with given fields: ctx, entry
func (_m *CrawlLogRepository) SaveCrawlLog(ctx context.Context, entry *models.CrawlLog) error {
	ret := _m.Called(ctx, entry)

	if len(ret) == 0 {
		panic("no return value specified for SaveCrawlLog")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.CrawlLog) error); ok {
		r0 = rf(ctx, entry)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewCrawlLogRepository creates a new instance of CrawlLogRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCrawlLogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CrawlLogRepository {
	mock := &CrawlLogRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
