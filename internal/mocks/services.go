package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/services/azure"
)

// MockKubeconfigResolver mocks a cluster type resolver.
type MockKubeconfigResolver struct {
	mock.Mock
}

// NewMockKubeconfigResolver creates a resolver mock that asserts its expectations on cleanup.
func NewMockKubeconfigResolver(t TestingT) *MockKubeconfigResolver {
	m := &MockKubeconfigResolver{}
	register(t, &m.Mock)
	return m
}

func (m *MockKubeconfigResolver) Resolve(ctx context.Context, t cluster.Type) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

// MockCredentialNegotiator mocks the AKS credential negotiator.
type MockCredentialNegotiator struct {
	mock.Mock
}

// NewMockCredentialNegotiator creates a negotiator mock that asserts its expectations on cleanup.
func NewMockCredentialNegotiator(t TestingT) *MockCredentialNegotiator {
	m := &MockCredentialNegotiator{}
	register(t, &m.Mock)
	return m
}

func (m *MockCredentialNegotiator) Negotiate(ctx context.Context, req azure.Request) (*azure.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*azure.Result)
	return result, args.Error(1)
}
