package changelog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/model"
)

// Mode selects the output shape.
type Mode string

// Modes.
const (
	// ModeNone breaks the window down per release.
	ModeNone Mode = "NONE"
	// ModeAggregated merges the window into one attributed change set.
	ModeAggregated Mode = "AGGREGATED"
)

// Kind is the discriminator of a changelog result.
type Kind string

// Result kinds, serialized as "__typename".
const (
	KindNone                   Kind = "NoneChangelog"
	KindAggregated             Kind = "AggregatedChangelog"
	KindNoneOrganization       Kind = "NoneOrganizationChangelog"
	KindAggregatedOrganization Kind = "AggregatedOrganizationChangelog"
)

// ComponentChangelog is either a *NoneChangelog or an *AggregatedChangelog.
type ComponentChangelog interface {
	Kind() Kind
	componentChangelog()
}

// OrganizationChangelog is either a *NoneOrganizationChangelog or an
// *AggregatedOrganizationChangelog.
type OrganizationChangelog interface {
	Kind() Kind
	organizationChangelog()
}

// ReleaseInfo identifies a release in a result.
type ReleaseInfo struct {
	UUID         uuid.UUID       `json:"uuid"`
	Version      string          `json:"version"`
	VersionMajor *int            `json:"versionMajor,omitempty"`
	VersionMinor *int            `json:"versionMinor,omitempty"`
	VersionPatch *int            `json:"versionPatch,omitempty"`
	Lifecycle    model.Lifecycle `json:"lifecycle"`
	CreatedDate  string          `json:"createdDate"`
}

// ComponentAttribution names the release responsible for a change.
type ComponentAttribution struct {
	ComponentUUID     uuid.UUID `json:"componentUuid"`
	ComponentName     string    `json:"componentName"`
	ReleaseUUID       uuid.UUID `json:"releaseUuid"`
	ReleaseVersion    string    `json:"releaseVersion"`
	BranchUUID        uuid.UUID `json:"branchUuid"`
	BranchName        string    `json:"branchName"`
	ComparedToVersion string    `json:"comparedToVersion,omitempty"`

	createdAt time.Time
}

// CodeCommit is a commit with its conventional change type.
type CodeCommit struct {
	CommitID   string `json:"commitId,omitempty"`
	CommitURI  string `json:"commitUri,omitempty"`
	Message    string `json:"message"`
	Author     string `json:"author,omitempty"`
	Email      string `json:"email,omitempty"`
	ChangeType string `json:"changeType"`
	Scope      string `json:"scope,omitempty"`
	Breaking   bool   `json:"breaking"`
}

// CommitsByType groups commits of one change type.
type CommitsByType struct {
	ChangeType string       `json:"changeType"`
	Commits    []CodeCommit `json:"commits"`
}

// ReleaseSbomArtifact is an artifact in a per-release diff.
type ReleaseSbomArtifact struct {
	Purl    string `json:"purl"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ReleaseSbomChanges is the artifact diff of one release against its predecessor.
type ReleaseSbomChanges struct {
	Added   []ReleaseSbomArtifact `json:"added"`
	Removed []ReleaseSbomArtifact `json:"removed"`
}

// Vulnerability is a vulnerability finding in a result.
type Vulnerability struct {
	VulnID   string   `json:"vulnId"`
	Purl     string   `json:"purl"`
	Severity string   `json:"severity,omitempty"`
	Aliases  []string `json:"aliases"`
}

// Violation is a policy violation finding in a result.
type Violation struct {
	Type string `json:"type"`
	Purl string `json:"purl"`
}

// Weakness is a static analysis finding in a result.
type Weakness struct {
	CweID    string `json:"cweId"`
	Severity string `json:"severity,omitempty"`
	RuleID   string `json:"ruleId,omitempty"`
	Location string `json:"location"`
}

// ReleaseFindingChanges is the finding diff of one release against its predecessor.
type ReleaseFindingChanges struct {
	AppearedCount           int             `json:"appearedCount"`
	ResolvedCount           int             `json:"resolvedCount"`
	AppearedVulnerabilities []Vulnerability `json:"appearedVulnerabilities"`
	ResolvedVulnerabilities []Vulnerability `json:"resolvedVulnerabilities"`
	AppearedViolations      []Violation     `json:"appearedViolations"`
	ResolvedViolations      []Violation     `json:"resolvedViolations"`
	AppearedWeaknesses      []Weakness      `json:"appearedWeaknesses"`
	ResolvedWeaknesses      []Weakness      `json:"resolvedWeaknesses"`
}

// ReleaseChanges is one row of a per-release breakdown.
type ReleaseChanges struct {
	Release        ReleaseInfo           `json:"release"`
	ComparedTo     ReleaseInfo           `json:"comparedTo"`
	Commits        []CodeCommit          `json:"commits"`
	SbomChanges    ReleaseSbomChanges    `json:"sbomChanges"`
	FindingChanges ReleaseFindingChanges `json:"findingChanges"`
}

// BranchReleases is the per-release breakdown of one branch.
type BranchReleases struct {
	BranchUUID    uuid.UUID        `json:"branchUuid"`
	BranchName    string           `json:"branchName"`
	ComponentUUID uuid.UUID        `json:"componentUuid"`
	ComponentName string           `json:"componentName"`
	Releases      []ReleaseChanges `json:"releases"`
}

// BranchSummary is the aggregated view of one branch.
type BranchSummary struct {
	BranchUUID    uuid.UUID       `json:"branchUuid"`
	BranchName    string          `json:"branchName"`
	ComponentUUID uuid.UUID       `json:"componentUuid"`
	ComponentName string          `json:"componentName"`
	FirstRelease  ReleaseInfo     `json:"firstRelease"`
	LastRelease   ReleaseInfo     `json:"lastRelease"`
	Releases      []ReleaseInfo   `json:"releases"`
	CommitsByType []CommitsByType `json:"commitsByType"`
}

// ArtifactWithAttribution is an artifact that changed somewhere in scope.
type ArtifactWithAttribution struct {
	Purl         string                 `json:"purl"`
	Name         string                 `json:"name"`
	Version      string                 `json:"version"`
	AddedIn      []ComponentAttribution `json:"addedIn"`
	RemovedIn    []ComponentAttribution `json:"removedIn"`
	IsNetAdded   bool                   `json:"isNetAdded"`
	IsNetRemoved bool                   `json:"isNetRemoved"`
}

// SbomChangesWithAttribution is the merged artifact change set.
type SbomChangesWithAttribution struct {
	Artifacts    []ArtifactWithAttribution `json:"artifacts"`
	TotalAdded   int                       `json:"totalAdded"`
	TotalRemoved int                       `json:"totalRemoved"`
}

// OrgLevelContext describes a finding's lifecycle across an organization.
type OrgLevelContext struct {
	IsNewToOrganization        bool     `json:"isNewToOrganization"`
	WasPreviouslyReported      bool     `json:"wasPreviouslyReported"`
	IsPartiallyResolved        bool     `json:"isPartiallyResolved"`
	IsFullyResolved            bool     `json:"isFullyResolved"`
	IsInheritedInAllComponents bool     `json:"isInheritedInAllComponents"`
	ComponentCount             int      `json:"componentCount"`
	AffectedComponentNames     []string `json:"affectedComponentNames"`
}

// FindingAttribution is shared by every attributed finding variant.
type FindingAttribution struct {
	AppearedIn     []ComponentAttribution `json:"appearedIn"`
	ResolvedIn     []ComponentAttribution `json:"resolvedIn"`
	PresentIn      []ComponentAttribution `json:"presentIn"`
	IsNetAppeared  bool                   `json:"isNetAppeared"`
	IsNetResolved  bool                   `json:"isNetResolved"`
	IsStillPresent bool                   `json:"isStillPresent"`
	OrgContext     *OrgLevelContext       `json:"orgContext,omitempty"`
}

// VulnerabilityWithAttribution is a vulnerability seen in scope, with its attribution.
type VulnerabilityWithAttribution struct {
	Vulnerability
	FindingAttribution
}

// ViolationWithAttribution is a violation seen in scope, with its attribution.
type ViolationWithAttribution struct {
	Violation
	FindingAttribution
}

// WeaknessWithAttribution is a weakness seen in scope, with its attribution.
type WeaknessWithAttribution struct {
	Weakness
	FindingAttribution
}

// FindingChangesWithAttribution is the merged finding change set.
type FindingChangesWithAttribution struct {
	Vulnerabilities []VulnerabilityWithAttribution `json:"vulnerabilities"`
	Violations      []ViolationWithAttribution     `json:"violations"`
	Weaknesses      []WeaknessWithAttribution      `json:"weaknesses"`
	TotalAppeared   int                            `json:"totalAppeared"`
	TotalResolved   int                            `json:"totalResolved"`
}

// Warning records a component excluded from an organization result.
type Warning struct {
	ComponentUUID uuid.UUID `json:"componentUuid"`
	ComponentName string    `json:"componentName"`
	Code          Code      `json:"code"`
	Message       string    `json:"message"`
}

// NoneChangelog is the per-release breakdown of one component.
type NoneChangelog struct {
	ComponentUUID uuid.UUID        `json:"componentUuid"`
	ComponentName string           `json:"componentName"`
	OrgUUID       uuid.UUID        `json:"orgUuid"`
	FirstRelease  *ReleaseInfo     `json:"firstRelease"`
	LastRelease   *ReleaseInfo     `json:"lastRelease"`
	Branches      []BranchReleases `json:"branches"`
}

// AggregatedChangelog is the attributed summary of one component.
type AggregatedChangelog struct {
	ComponentUUID  uuid.UUID                     `json:"componentUuid"`
	ComponentName  string                        `json:"componentName"`
	OrgUUID        uuid.UUID                     `json:"orgUuid"`
	FirstRelease   *ReleaseInfo                  `json:"firstRelease"`
	LastRelease    *ReleaseInfo                  `json:"lastRelease"`
	Branches       []BranchSummary               `json:"branches"`
	SbomChanges    SbomChangesWithAttribution    `json:"sbomChanges"`
	FindingChanges FindingChangesWithAttribution `json:"findingChanges"`
}

// NoneOrganizationChangelog lists the per-release breakdown of every component.
type NoneOrganizationChangelog struct {
	OrgUUID    uuid.UUID       `json:"orgUuid"`
	DateFrom   string          `json:"dateFrom"`
	DateTo     string          `json:"dateTo"`
	Components []NoneChangelog `json:"components"`
	Warnings   []Warning       `json:"warnings"`
}

// AggregatedOrganizationChangelog merges every component into one attributed
// change set with organization context, keeping per-component summaries for drill-down.
type AggregatedOrganizationChangelog struct {
	OrgUUID        uuid.UUID                     `json:"orgUuid"`
	DateFrom       string                        `json:"dateFrom"`
	DateTo         string                        `json:"dateTo"`
	Components     []AggregatedChangelog         `json:"components"`
	SbomChanges    SbomChangesWithAttribution    `json:"sbomChanges"`
	FindingChanges FindingChangesWithAttribution `json:"findingChanges"`
	Warnings       []Warning                     `json:"warnings"`
}

// Kind implements ComponentChangelog.
func (*NoneChangelog) Kind() Kind { return KindNone }

// Kind implements ComponentChangelog.
func (*AggregatedChangelog) Kind() Kind { return KindAggregated }

// Kind implements OrganizationChangelog.
func (*NoneOrganizationChangelog) Kind() Kind { return KindNoneOrganization }

// Kind implements OrganizationChangelog.
func (*AggregatedOrganizationChangelog) Kind() Kind { return KindAggregatedOrganization }

func (*NoneChangelog) componentChangelog() {}
func (*AggregatedChangelog) componentChangelog() {}
func (*NoneOrganizationChangelog) organizationChangelog() {}
func (*AggregatedOrganizationChangelog) organizationChangelog() {}

// MarshalJSON adds the "__typename" discriminator.
func (c NoneChangelog) MarshalJSON() ([]byte, error) {
	type plain NoneChangelog
	return json.Marshal(struct {
		Typename Kind `json:"__typename"`
		plain
	}{KindNone, plain(c)})
}

// MarshalJSON adds the "__typename" discriminator.
func (c AggregatedChangelog) MarshalJSON() ([]byte, error) {
	type plain AggregatedChangelog
	return json.Marshal(struct {
		Typename Kind `json:"__typename"`
		plain
	}{KindAggregated, plain(c)})
}

// MarshalJSON adds the "__typename" discriminator.
func (c NoneOrganizationChangelog) MarshalJSON() ([]byte, error) {
	type plain NoneOrganizationChangelog
	return json.Marshal(struct {
		Typename Kind `json:"__typename"`
		plain
	}{KindNoneOrganization, plain(c)})
}

// MarshalJSON adds the "__typename" discriminator.
func (c AggregatedOrganizationChangelog) MarshalJSON() ([]byte, error) {
	type plain AggregatedOrganizationChangelog
	return json.Marshal(struct {
		Typename Kind `json:"__typename"`
		plain
	}{KindAggregatedOrganization, plain(c)})
}
