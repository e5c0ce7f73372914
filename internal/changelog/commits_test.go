package changelog

import (
	"testing"

	"github.com/ortelius/pdvd-changelog/model"
	"github.com/stretchr/testify/assert"
)

func TestParseCommit(t *testing.T) {
	tests := map[string]struct {
		message      string
		wantType     string
		wantScope    string
		wantBreaking bool
	}{
		"feature":             {message: "feat: add login", wantType: "feat"},
		"scoped fix":          {message: "fix(api): handle nil", wantType: "fix", wantScope: "api"},
		"breaking marker":     {message: "refactor(core)!: drop v1 api", wantType: "refactor", wantScope: "core", wantBreaking: true},
		"breaking footer":     {message: "feat: new auth\n\nBREAKING CHANGE: tokens rotate", wantType: "feat", wantBreaking: true},
		"unknown type":        {message: "wip: stuff", wantType: "others"},
		"no conventional tag": {message: "Merge branch 'main'", wantType: "others"},
		"upper case type":     {message: "Fix: typo", wantType: "fix"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := parseCommit(model.Commit{Message: tt.message})
			assert.Equal(t, tt.wantType, c.ChangeType)
			assert.Equal(t, tt.wantScope, c.Scope)
			assert.Equal(t, tt.wantBreaking, c.Breaking)
			assert.Equal(t, tt.message, c.Message)
		})
	}
}

func TestGroupCommits(t *testing.T) {
	commits := parseCommits([]model.Commit{
		{Message: "chore: bump deps"},
		{Message: "fix: npe"},
		{Message: "feat!: remove endpoint"},
		{Message: "feat: add endpoint"},
		{Message: "random"},
	})
	groups := groupCommits(commits)

	types := make([]string, 0, len(groups))
	for _, g := range groups {
		types = append(types, g.ChangeType)
	}
	assert.Equal(t, []string{ChangeTypeBreaking, "feat", "fix", "chore", ChangeTypeOthers}, types)
	assert.Len(t, groups[0].Commits, 1)
	assert.Equal(t, "feat!: remove endpoint", groups[0].Commits[0].Message)
	assert.Empty(t, groupCommits(nil))
}
