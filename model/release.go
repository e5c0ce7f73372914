// Package model - Release defines the release document and the content snapshot (artifacts, findings, commits) it carries.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/util"
)

// Lifecycle is the lifecycle state of a release.
type Lifecycle string

// Release lifecycle states.
const (
	LifecyclePending             Lifecycle = "PENDING"
	LifecycleDraft               Lifecycle = "DRAFT"
	LifecycleAssembled           Lifecycle = "ASSEMBLED"
	LifecycleGeneralAvailability Lifecycle = "GENERAL_AVAILABILITY"
	LifecycleCancelled           Lifecycle = "CANCELLED"
	LifecycleRejected            Lifecycle = "REJECTED"
	LifecycleEndOfSupport        Lifecycle = "END_OF_SUPPORT"
)

// Commit is a source code entry bundled into a release.
type Commit struct {
	CommitID string `json:"commit_id,omitempty"`
	URI      string `json:"uri,omitempty"`
	Message  string `json:"message"`
	Author   string `json:"author,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Release represents a release object stored in the database.
// Releases are immutable once created; Artifacts and Findings are the
// point-in-time SBOM and finding snapshot taken at creation.
type Release struct {
	UUID         uuid.UUID `json:"_key"`
	ObjType      string    `json:"objtype,omitempty"`
	Version      string    `json:"version"`
	VersionMajor *int      `json:"version_major,omitempty"`
	VersionMinor *int      `json:"version_minor,omitempty"`
	VersionPatch *int      `json:"version_patch,omitempty"`
	Lifecycle    Lifecycle `json:"lifecycle"`
	CreatedAt    time.Time `json:"created_at"`
	Branch       uuid.UUID `json:"branch"`
	Component    uuid.UUID `json:"component"`
	Org          uuid.UUID `json:"org"`

	Artifacts []Artifact `json:"artifacts,omitempty"`
	Findings  []Finding  `json:"findings,omitempty"`
	Commits   []Commit   `json:"commits,omitempty"`
}

// NewRelease creates a new Release with default values.
func NewRelease() *Release {
	return &Release{
		ObjType:   "Release",
		Lifecycle: LifecyclePending,
	}
}

// Before reports whether r sorts strictly before other in a branch sequence:
// by creation time, tie-broken by identifier.
func (r Release) Before(other Release) bool {
	if !r.CreatedAt.Equal(other.CreatedAt) {
		return r.CreatedAt.Before(other.CreatedAt)
	}
	return r.UUID.String() < other.UUID.String()
}

// ParseAndSetVersion parses the version string into semver components.
func (r *Release) ParseAndSetVersion() {
	if r.Version == "" {
		return
	}

	parsed := util.ParseSemver(util.CleanVersion(r.Version))
	if parsed != nil {
		r.VersionMajor = parsed.Major
		r.VersionMinor = parsed.Minor
		r.VersionPatch = parsed.Patch
	}
}
