// Package model - Artifact is an SBOM component referenced by a release.
package model

import "github.com/ortelius/pdvd-changelog/util"

// Artifact is an SBOM entry identified by its package URL. The same purl can
// appear in many releases; membership is a set fact, not ownership.
type Artifact struct {
	Purl    string `json:"purl"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// WithDisplayFields fills Name and Version from the purl when they are missing.
func (a Artifact) WithDisplayFields() Artifact {
	if a.Name != "" && a.Version != "" {
		return a
	}
	name, version := util.PurlNameAndVersion(a.Purl)
	if a.Name == "" {
		a.Name = name
	}
	if a.Version == "" {
		a.Version = version
	}
	return a
}
