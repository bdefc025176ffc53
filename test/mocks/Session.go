package mocks

import (
	context "context"

	goquery "github.com/PuerkitoBio/goquery"
	mock "github.com/stretchr/testify/mock"
)

// Session is a mock type for the Session type
type Session struct {
	mock.Mock
}

// Close provides a mock function with no fields
func (_m *Session) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Fetch provides a mock function with given fields: ctx, url
func (_m *Session) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ret := _m.Called(ctx, url)

	if len(ret) == 0 {
		panic("no return value specified for Fetch")
	}

	var r0 *goquery.Document
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*goquery.Document, error)); ok {
		return rf(ctx, url)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*goquery.Document)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewSession creates a new instance of Session. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *Session {
	mock := &Session{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
