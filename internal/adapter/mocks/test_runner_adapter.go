// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"automark.dev/pkg/automark/internal/adapter"
)

// MockTestRunnerAdapter is a mock implementation of adapter.TestRunnerAdapter.
type MockTestRunnerAdapter struct {
	mock.Mock
}

// NewMockTestRunnerAdapter creates a new MockTestRunnerAdapter with
// expectations asserted on test cleanup.
func NewMockTestRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTestRunnerAdapter {
	m := &MockTestRunnerAdapter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Run provides a mock function.
func (m *MockTestRunnerAdapter) Run(ctx context.Context, spec adapter.RunSpec) (adapter.RunResult, error) {
	ret := m.Called(ctx, spec)

	return ret.Get(0).(adapter.RunResult), ret.Error(1)
}
