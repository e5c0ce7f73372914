package changelog

import (
	"sort"

	"github.com/ortelius/pdvd-changelog/model"
)

// ArtifactDiff is the purl keyed difference between two artifact sets.
// A version change under a different purl is one removal plus one addition.
type ArtifactDiff struct {
	Added   []model.Artifact
	Removed []model.Artifact
}

// DiffArtifacts returns added = later - earlier and removed = earlier - later,
// each sorted by purl.
func DiffArtifacts(earlier, later []model.Artifact) ArtifactDiff {
	before := indexArtifacts(earlier)
	after := indexArtifacts(later)

	diff := ArtifactDiff{Added: make([]model.Artifact, 0), Removed: make([]model.Artifact, 0)}
	for purl, a := range after {
		if _, ok := before[purl]; !ok {
			diff.Added = append(diff.Added, a)
		}
	}
	for purl, a := range before {
		if _, ok := after[purl]; !ok {
			diff.Removed = append(diff.Removed, a)
		}
	}
	sortArtifacts(diff.Added)
	sortArtifacts(diff.Removed)
	return diff
}

// Apply returns (base + Added) - Removed, sorted by purl.
func (d ArtifactDiff) Apply(base []model.Artifact) []model.Artifact {
	index := indexArtifacts(base)
	for _, a := range d.Added {
		index[a.Purl] = a
	}
	for _, a := range d.Removed {
		delete(index, a.Purl)
	}
	result := make([]model.Artifact, 0, len(index))
	for _, a := range index {
		result = append(result, a)
	}
	sortArtifacts(result)
	return result
}

// indexArtifacts keys artifacts by purl; the first occurrence wins.
func indexArtifacts(artifacts []model.Artifact) map[string]model.Artifact {
	index := make(map[string]model.Artifact, len(artifacts))
	for _, a := range artifacts {
		if _, seen := index[a.Purl]; !seen {
			index[a.Purl] = a.WithDisplayFields()
		}
	}
	return index
}

func sortArtifacts(artifacts []model.Artifact) {
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Purl < artifacts[j].Purl })
}

func toReleaseSbomArtifacts(artifacts []model.Artifact) []ReleaseSbomArtifact {
	result := make([]ReleaseSbomArtifact, 0, len(artifacts))
	for _, a := range artifacts {
		result = append(result, ReleaseSbomArtifact{Purl: a.Purl, Name: a.Name, Version: a.Version})
	}
	return result
}
