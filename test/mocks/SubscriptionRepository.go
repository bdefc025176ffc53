package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// SubscriptionRepository is a mock type for the SubscriptionRepository type
type SubscriptionRepository struct {
	mock.Mock
}

// GetSubscribedChats provides a mock function with given fields: ctx
func (_m *SubscriptionRepository) GetSubscribedChats(ctx context.Context) ([]int64, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetSubscribedChats")
	}

	var r0 []int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]int64, error)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// SubscribeChat provides a mock function with given fields: ctx, chatID
func (_m *SubscriptionRepository) SubscribeChat(ctx context.Context, chatID int64) (bool, error) {
	ret := _m.Called(ctx, chatID)

	if len(ret) == 0 {
		panic("no return value specified for SubscribeChat")
	}

	if rf, ok := ret.Get(0).(func(context.Context, int64) (bool, error)); ok {
		return rf(ctx, chatID)
	}

	return ret.Bool(0), ret.Error(1)
}

// UnsubscribeChat provides a mock function with given fields: ctx, chatID
func (_m *SubscriptionRepository) UnsubscribeChat(ctx context.Context, chatID int64) (bool, error) {
	ret := _m.Called(ctx, chatID)

	if len(ret) == 0 {
		panic("no return value specified for UnsubscribeChat")
	}

	if rf, ok := ret.Get(0).(func(context.Context, int64) (bool, error)); ok {
		return rf(ctx, chatID)
	}

	return ret.Bool(0), ret.Error(1)
}

// NewSubscriptionRepository creates a new instance of SubscriptionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSubscriptionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubscriptionRepository {
	mock := &SubscriptionRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
