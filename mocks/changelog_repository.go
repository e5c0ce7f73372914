// Package mocks provides testify mocks for the changelog collaborators.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
	"github.com/stretchr/testify/mock"
)

// ChangelogRepository is a mock of changelog.Repository.
type ChangelogRepository struct {
	mock.Mock
}

// NewChangelogRepository creates a mock whose expectations are asserted when the test ends.
func NewChangelogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ChangelogRepository {
	m := &ChangelogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetRelease provides a mock function.
func (m *ChangelogRepository) GetRelease(ctx context.Context, id uuid.UUID) (*model.Release, error) {
	ret := m.Called(ctx, id)
	r, _ := ret.Get(0).(*model.Release)
	return r, ret.Error(1)
}

// GetBranch provides a mock function.
func (m *ChangelogRepository) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	ret := m.Called(ctx, id)
	b, _ := ret.Get(0).(*model.Branch)
	return b, ret.Error(1)
}

// GetComponent provides a mock function.
func (m *ChangelogRepository) GetComponent(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	ret := m.Called(ctx, id)
	c, _ := ret.Get(0).(*model.Component)
	return c, ret.Error(1)
}

// ListBranchesOfComponent provides a mock function.
func (m *ChangelogRepository) ListBranchesOfComponent(ctx context.Context, component uuid.UUID) ([]model.Branch, error) {
	ret := m.Called(ctx, component)
	b, _ := ret.Get(0).([]model.Branch)
	return b, ret.Error(1)
}

// ListReleasesOfBranch provides a mock function.
func (m *ChangelogRepository) ListReleasesOfBranch(ctx context.Context, branch uuid.UUID, from, to time.Time) ([]model.Release, error) {
	ret := m.Called(ctx, branch, from, to)
	r, _ := ret.Get(0).([]model.Release)
	return r, ret.Error(1)
}

// ListComponentsOfOrg provides a mock function.
func (m *ChangelogRepository) ListComponentsOfOrg(ctx context.Context, org uuid.UUID, perspective *uuid.UUID) ([]model.Component, error) {
	ret := m.Called(ctx, org, perspective)
	c, _ := ret.Get(0).([]model.Component)
	return c, ret.Error(1)
}
