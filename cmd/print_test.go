package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	attribution := changelog.ComponentAttribution{
		ComponentUUID: uuid.New(), ComponentName: "api", ReleaseVersion: "1.1.0", BranchName: "main",
	}
	aggregated := &changelog.AggregatedOrganizationChangelog{
		OrgUUID: uuid.New(),
		SbomChanges: changelog.SbomChangesWithAttribution{
			Artifacts: []changelog.ArtifactWithAttribution{{
				Purl: "pkg:npm/left-pad@1.3.0", AddedIn: []changelog.ComponentAttribution{attribution}, IsNetAdded: true,
			}},
			TotalAdded: 1,
		},
		FindingChanges: changelog.FindingChangesWithAttribution{
			Vulnerabilities: []changelog.VulnerabilityWithAttribution{{
				Vulnerability: changelog.Vulnerability{VulnID: "CVE-2024-9", Purl: "pkg:npm/left-pad@1.3.0"},
				FindingAttribution: changelog.FindingAttribution{
					AppearedIn:    []changelog.ComponentAttribution{attribution},
					IsNetAppeared: true,
					OrgContext:    &changelog.OrgLevelContext{IsNewToOrganization: true, ComponentCount: 1},
				},
			}},
			TotalAppeared: 1,
		},
		Warnings: []changelog.Warning{{ComponentName: "broken", Code: changelog.CodePartialComponentFailure, Message: "boom"}},
	}

	t.Run("should print JSON with the typename", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, "json", aggregated))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
		assert.Equal(t, "AggregatedOrganizationChangelog", body["__typename"])
	})

	t.Run("should print attributed tables", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, "table", aggregated))

		out := buf.String()
		assert.Contains(t, out, "pkg:npm/left-pad@1.3.0")
		assert.Contains(t, out, "api/main@1.1.0")
		assert.Contains(t, out, "CVE-2024-9")
		assert.Contains(t, out, "appeared")
		assert.Contains(t, out, "new")
		assert.Contains(t, out, "broken")
	})

	t.Run("should print one row per release", func(t *testing.T) {
		none := &changelog.NoneChangelog{
			ComponentName: "api",
			Branches: []changelog.BranchReleases{{
				BranchName: "main",
				Releases: []changelog.ReleaseChanges{{
					Release:    changelog.ReleaseInfo{Version: "1.1.0"},
					ComparedTo: changelog.ReleaseInfo{Version: "1.0.0"},
				}},
			}},
		}
		var buf bytes.Buffer
		require.NoError(t, render(&buf, "table", none))
		assert.Contains(t, buf.String(), "1.0.0")
		assert.Contains(t, buf.String(), "1.1.0")
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		assert.Error(t, render(&bytes.Buffer{}, "yaml", aggregated))
	})
}
