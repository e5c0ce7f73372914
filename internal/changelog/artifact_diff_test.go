package changelog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ortelius/pdvd-changelog/model"
	"github.com/stretchr/testify/assert"
)

func artifacts(purls ...string) []model.Artifact {
	result := make([]model.Artifact, 0, len(purls))
	for _, p := range purls {
		result = append(result, model.Artifact{Purl: p})
	}
	return result
}

func purls(as []model.Artifact) []string {
	result := make([]string, 0, len(as))
	for _, a := range as {
		result = append(result, a.Purl)
	}
	return result
}

func TestDiffArtifacts(t *testing.T) {
	tests := map[string]struct {
		earlier     []string
		later       []string
		wantAdded   []string
		wantRemoved []string
	}{
		"added artifact": {
			earlier:     []string{"pkg:npm/a@1"},
			later:       []string{"pkg:npm/a@1", "pkg:npm/b@1"},
			wantAdded:   []string{"pkg:npm/b@1"},
			wantRemoved: []string{},
		},
		"version bump is removal plus addition": {
			earlier:     []string{"pkg:npm/a@1"},
			later:       []string{"pkg:npm/a@2"},
			wantAdded:   []string{"pkg:npm/a@2"},
			wantRemoved: []string{"pkg:npm/a@1"},
		},
		"unchanged": {
			earlier:     []string{"pkg:npm/a@1", "pkg:npm/b@1"},
			later:       []string{"pkg:npm/b@1", "pkg:npm/a@1"},
			wantAdded:   []string{},
			wantRemoved: []string{},
		},
		"duplicates count once": {
			earlier:     []string{},
			later:       []string{"pkg:npm/c@1", "pkg:npm/c@1"},
			wantAdded:   []string{"pkg:npm/c@1"},
			wantRemoved: []string{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			diff := DiffArtifacts(artifacts(tt.earlier...), artifacts(tt.later...))
			assert.Equal(t, tt.wantAdded, purls(diff.Added))
			assert.Equal(t, tt.wantRemoved, purls(diff.Removed))
		})
	}
}

func TestDiffArtifactsFillsDisplayFields(t *testing.T) {
	diff := DiffArtifacts(nil, artifacts("pkg:npm/lodash@4.17.21"))
	assert.Equal(t, "lodash", diff.Added[0].Name)
	assert.Equal(t, "4.17.21", diff.Added[0].Version)
}

func TestDiffArtifactsReconstructsLaterSet(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	universe := make([]string, 30)
	for i := range universe {
		universe[i] = fmt.Sprintf("pkg:npm/p%02d@1", i)
	}
	sample := func() []string {
		var out []string
		for _, p := range universe {
			if rng.Intn(2) == 0 {
				out = append(out, p)
			}
		}
		return out
	}

	for i := 0; i < 100; i++ {
		earlier, later := artifacts(sample()...), artifacts(sample()...)
		diff := DiffArtifacts(earlier, later)

		removed := map[string]bool{}
		for _, p := range purls(diff.Removed) {
			removed[p] = true
		}
		for _, p := range purls(diff.Added) {
			assert.False(t, removed[p], "%s both added and removed", p)
		}

		want := DiffArtifacts(nil, later).Added
		assert.Equal(t, purls(want), purls(diff.Apply(earlier)))
	}
}
