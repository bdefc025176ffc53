package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Crawler is a mock type for the Crawler type
type Crawler struct {
	mock.Mock
}

// RunCrawl provides a mock function with given fields: ctx, sites
func (_m *Crawler) RunCrawl(ctx context.Context, sites []models.SiteConfig) (models.CrawlSummary, error) {
	ret := _m.Called(ctx, sites)

	if len(ret) == 0 {
		panic("no return value specified for RunCrawl")
	}

	if rf, ok := ret.Get(0).(func(context.Context, []models.SiteConfig) (models.CrawlSummary, error)); ok {
		return rf(ctx, sites)
	}

	return ret.Get(0).(models.CrawlSummary), ret.Error(1)
}

// NewCrawler creates a new instance of Crawler. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCrawler(t interface {
	mock.TestingT
	Cleanup(func())
}) *Crawler {
	mock := &Crawler{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
