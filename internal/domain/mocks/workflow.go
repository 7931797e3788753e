// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"automark.dev/pkg/automark/internal/domain"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a new MockWorkflow with expectations asserted on
// test cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	m := &MockWorkflow{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Grade provides a mock function.
func (m *MockWorkflow) Grade(ctx context.Context, args domain.GradeArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}

// List provides a mock function.
func (m *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}

// View provides a mock function.
func (m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}
