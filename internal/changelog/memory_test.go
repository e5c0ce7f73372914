package changelog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return t0.AddDate(0, 0, n) }

// memoryRepository is an in-memory Repository for engine tests.
type memoryRepository struct {
	releases   map[uuid.UUID]model.Release
	branches   map[uuid.UUID]model.Branch
	components map[uuid.UUID]model.Component

	// failBranches makes ListBranchesOfComponent fail for a component.
	failBranches map[uuid.UUID]error
	// onListBranches runs before branches of a component are listed.
	onListBranches func(component uuid.UUID)
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		releases:     map[uuid.UUID]model.Release{},
		branches:     map[uuid.UUID]model.Branch{},
		components:   map[uuid.UUID]model.Component{},
		failBranches: map[uuid.UUID]error{},
	}
}

func (m *memoryRepository) addComponent(org uuid.UUID, name string) model.Component {
	c := model.Component{UUID: uuid.New(), Name: name, Org: org, Type: model.ComponentTypeComponent}
	m.components[c.UUID] = c
	return c
}

func (m *memoryRepository) addBranch(c model.Component, name string) model.Branch {
	b := model.Branch{UUID: uuid.New(), Name: name, Component: c.UUID}
	m.branches[b.UUID] = b
	return b
}

func (m *memoryRepository) addRelease(b model.Branch, version string, at time.Time, purls []string, findings ...model.Finding) model.Release {
	c := m.components[b.Component]
	r := *model.NewRelease()
	r.UUID = uuid.New()
	r.Version = version
	r.Lifecycle = model.LifecycleGeneralAvailability
	r.CreatedAt = at
	r.Branch = b.UUID
	r.Component = c.UUID
	r.Org = c.Org
	for _, p := range purls {
		r.Artifacts = append(r.Artifacts, model.Artifact{Purl: p})
	}
	r.Findings = findings
	m.releases[r.UUID] = r
	return r
}

func (m *memoryRepository) withCommits(r model.Release, messages ...string) model.Release {
	for i, msg := range messages {
		r.Commits = append(r.Commits, model.Commit{CommitID: r.Version + "-" + string(rune('a'+i)), Message: msg})
	}
	m.releases[r.UUID] = r
	return r
}

func (m *memoryRepository) GetRelease(ctx context.Context, id uuid.UUID) (*model.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := m.releases[id]
	if !ok {
		return nil, NotFound("release", id.String())
	}
	return &r, nil
}

func (m *memoryRepository) GetBranch(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, ok := m.branches[id]
	if !ok {
		return nil, NotFound("branch", id.String())
	}
	return &b, nil
}

func (m *memoryRepository) GetComponent(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := m.components[id]
	if !ok {
		return nil, NotFound("component", id.String())
	}
	return &c, nil
}

func (m *memoryRepository) ListBranchesOfComponent(ctx context.Context, component uuid.UUID) ([]model.Branch, error) {
	if m.onListBranches != nil {
		m.onListBranches(component)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.failBranches[component]; ok {
		return nil, err
	}
	var result []model.Branch
	for _, b := range m.branches {
		if b.Component == component {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *memoryRepository) ListReleasesOfBranch(ctx context.Context, branch uuid.UUID, from, to time.Time) ([]model.Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []model.Release
	for _, r := range m.releases {
		if r.Branch == branch && !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memoryRepository) ListComponentsOfOrg(ctx context.Context, org uuid.UUID, perspective *uuid.UUID) ([]model.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []model.Component
	for _, c := range m.components {
		if c.Org == org && c.InPerspective(perspective) {
			result = append(result, c)
		}
	}
	return result, nil
}

func vuln(id, purl string, aliases ...string) model.Finding {
	return model.Finding{Kind: model.FindingVulnerability, ID: id, Purl: purl, Severity: "HIGH", Aliases: aliases}
}

func violation(kind, purl string) model.Finding {
	return model.Finding{Kind: model.FindingViolation, ID: kind, Purl: purl}
}

func weakness(cwe, location string) model.Finding {
	return model.Finding{Kind: model.FindingWeakness, ID: cwe, Location: location, RuleID: "rule-1"}
}
