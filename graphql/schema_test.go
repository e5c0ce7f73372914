package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	core "github.com/ortelius/pdvd-changelog/internal/changelog"
	"github.com/ortelius/pdvd-changelog/mocks"
	"github.com/ortelius/pdvd-changelog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type crossBranchFixture struct {
	org      uuid.UUID
	earlier  model.Release
	later    model.Release
	repo     *mocks.ChangelogRepository
	schema   graphql.Schema
	hotfixID uuid.UUID
}

// newCrossBranchFixture wires two releases of one component on different branches.
func newCrossBranchFixture(t *testing.T) crossBranchFixture {
	org := uuid.New()
	component := model.Component{UUID: uuid.New(), Name: "api", Org: org, Type: model.ComponentTypeComponent}
	main := model.Branch{UUID: uuid.New(), Name: "main", Component: component.UUID}
	hotfix := model.Branch{UUID: uuid.New(), Name: "hotfix", Component: component.UUID}

	earlier := model.Release{
		UUID: uuid.New(), Version: "1.0.0", Lifecycle: model.LifecycleGeneralAvailability,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Branch:    main.UUID, Component: component.UUID, Org: org,
		Artifacts: []model.Artifact{{Purl: "pkg:npm/a@1"}},
	}
	later := model.Release{
		UUID: uuid.New(), Version: "1.0.1", Lifecycle: model.LifecycleGeneralAvailability,
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Branch:    hotfix.UUID, Component: component.UUID, Org: org,
		Artifacts: []model.Artifact{{Purl: "pkg:npm/a@1"}, {Purl: "pkg:npm/b@2"}},
		Findings:  []model.Finding{{Kind: model.FindingVulnerability, ID: "CVE-2024-1", Purl: "pkg:npm/b@2"}},
		Commits:   []model.Commit{{CommitID: "c1", Message: "fix(api): patch b"}},
	}

	repo := mocks.NewChangelogRepository(t)
	repo.On("GetRelease", mock.Anything, earlier.UUID).Return(&earlier, nil).Maybe()
	repo.On("GetRelease", mock.Anything, later.UUID).Return(&later, nil).Maybe()
	repo.On("GetComponent", mock.Anything, component.UUID).Return(&component, nil).Maybe()
	repo.On("GetBranch", mock.Anything, main.UUID).Return(&main, nil).Maybe()
	repo.On("GetBranch", mock.Anything, hotfix.UUID).Return(&hotfix, nil).Maybe()

	schema, err := CreateSchema(core.NewService(repo, zap.NewNop()))
	require.NoError(t, err)

	return crossBranchFixture{org: org, earlier: earlier, later: later, repo: repo, schema: schema, hotfixID: hotfix.UUID}
}

const componentQuery = `query($r1: ID!, $r2: ID!, $org: ID!, $mode: ChangelogMode) {
  componentChangelog(release1: $r1, release2: $r2, orgUuid: $org, mode: $mode) {
    __typename
    ... on NoneChangelog {
      componentName
      branches { branchName releases { release { version } sbomChanges { added { purl } } } }
    }
    ... on AggregatedChangelog {
      componentName
      sbomChanges { totalAdded artifacts { purl isNetAdded addedIn { releaseVersion } } }
      findingChanges { totalAppeared vulnerabilities { vulnId isNetAppeared } }
    }
  }
}`

func TestCreateSchema(t *testing.T) {
	t.Run("should resolve the NONE variant", func(t *testing.T) {
		f := newCrossBranchFixture(t)

		result := graphql.Do(graphql.Params{
			Schema:        f.schema,
			RequestString: componentQuery,
			Context:       context.Background(),
			VariableValues: map[string]interface{}{
				"r1": f.earlier.UUID.String(), "r2": f.later.UUID.String(), "org": f.org.String(),
			},
		})
		require.Empty(t, result.Errors)

		data := result.Data.(map[string]interface{})["componentChangelog"].(map[string]interface{})
		assert.Equal(t, "NoneChangelog", data["__typename"])
		assert.Equal(t, "api", data["componentName"])

		branches := data["branches"].([]interface{})
		require.Len(t, branches, 1)
		branch := branches[0].(map[string]interface{})
		assert.Equal(t, "hotfix", branch["branchName"])
		releases := branch["releases"].([]interface{})
		require.Len(t, releases, 1)
	})

	t.Run("should resolve the AGGREGATED variant", func(t *testing.T) {
		f := newCrossBranchFixture(t)

		result := graphql.Do(graphql.Params{
			Schema:        f.schema,
			RequestString: componentQuery,
			Context:       context.Background(),
			VariableValues: map[string]interface{}{
				"r1": f.earlier.UUID.String(), "r2": f.later.UUID.String(), "org": f.org.String(), "mode": "AGGREGATED",
			},
		})
		require.Empty(t, result.Errors)

		data := result.Data.(map[string]interface{})["componentChangelog"].(map[string]interface{})
		assert.Equal(t, "AggregatedChangelog", data["__typename"])

		sbom := data["sbomChanges"].(map[string]interface{})
		assert.EqualValues(t, 1, sbom["totalAdded"])
		artifacts := sbom["artifacts"].([]interface{})
		require.Len(t, artifacts, 1)
		artifact := artifacts[0].(map[string]interface{})
		assert.Equal(t, "pkg:npm/b@2", artifact["purl"])
		assert.Equal(t, true, artifact["isNetAdded"])

		findings := data["findingChanges"].(map[string]interface{})
		vulns := findings["vulnerabilities"].([]interface{})
		require.Len(t, vulns, 1)
		assert.Equal(t, "CVE-2024-1", vulns[0].(map[string]interface{})["vulnId"])
	})

	t.Run("should report an invalid uuid as an error", func(t *testing.T) {
		f := newCrossBranchFixture(t)

		result := graphql.Do(graphql.Params{
			Schema:        f.schema,
			RequestString: componentQuery,
			Context:       context.Background(),
			VariableValues: map[string]interface{}{
				"r1": "not-a-uuid", "r2": f.later.UUID.String(), "org": f.org.String(),
			},
		})
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "release1")
	})
}
