package mocks

import (
	context "context"

	models "github.com/Houeta/price-cage/internal/models"
	parser "github.com/Houeta/price-cage/internal/parser"
	mock "github.com/stretchr/testify/mock"
)

// SessionOpener is a mock type for the SessionOpener type
type SessionOpener struct {
	mock.Mock
}

// Open provides a mock function with given fields: ctx, site
func (_m *SessionOpener) Open(ctx context.Context, site models.SiteConfig) (parser.Session, error) {
	ret := _m.Called(ctx, site)

	if len(ret) == 0 {
		panic("no return value specified for Open")
	}

	var r0 parser.Session
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.SiteConfig) (parser.Session, error)); ok {
		return rf(ctx, site)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(parser.Session)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewSessionOpener creates a new instance of SessionOpener. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSessionOpener(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionOpener {
	mock := &SessionOpener{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
