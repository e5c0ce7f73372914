// Package changelog defines types for Kafka event processing of changelog requests.
package changelog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types carried on the changelog topics.
const (
	EventChangelogRequested = "changelog.requested"
	EventChangelogComputed  = "changelog.computed"
	SchemaVersion           = "v1"
)

// Scope selects which changelog operation a request runs.
type Scope string

// Request scopes.
const (
	ScopeReleases     Scope = "RELEASES"
	ScopeComponent    Scope = "COMPONENT"
	ScopeOrganization Scope = "ORGANIZATION"
)

// ChangelogRequestedEvent asks the worker to compute a changelog.
type ChangelogRequestedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	Scope    Scope  `json:"scope"`
	Mode     string `json:"mode,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
	OrgUUID  string `json:"org_uuid"`

	// RELEASES
	Release1 string `json:"release1,omitempty"`
	Release2 string `json:"release2,omitempty"`

	// COMPONENT
	ComponentUUID string `json:"component_uuid,omitempty"`
	BranchUUID    string `json:"branch_uuid,omitempty"`

	// ORGANIZATION
	PerspectiveUUID string `json:"perspective_uuid,omitempty"`

	// COMPONENT and ORGANIZATION, ISO-8601
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

// ChangelogComputedEvent carries the outcome of a ChangelogRequestedEvent.
type ChangelogComputedEvent struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	// RequestID is the EventID of the request being answered.
	RequestID string `json:"request_id"`
	Success   bool   `json:"success"`

	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Changelog is one of the four result variants, tagged with "__typename".
	Changelog json.RawMessage `json:"changelog,omitempty"`
}

func newComputedEvent(requestID string) ChangelogComputedEvent {
	return ChangelogComputedEvent{
		EventType:     EventChangelogComputed,
		EventID:       uuid.New().String(),
		EventTime:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		RequestID:     requestID,
	}
}
