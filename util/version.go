// Package util provides version, package URL and concurrency helpers shared by the changelog packages.
//
//revive:disable-next-line:var-naming
package util

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPrefixPattern = regexp.MustCompile(`^.*?-v(\d+)`)

// ParsedSemver holds the numeric components of a version plus its prerelease tag
type ParsedSemver struct {
	Major      *int
	Minor      *int
	Patch      *int
	Prerelease string
}

// CleanVersion removes branch prefixes from version strings
// Examples:
//   - "main-v12.0.1376-g7ac6f3" -> "12.0.1376-g7ac6f3"
//   - "develop-v2.3.4" -> "2.3.4"
//   - "v1.2.3" -> "v1.2.3" (unchanged)
func CleanVersion(version string) string {
	if version == "" {
		return version
	}
	matches := versionPrefixPattern.FindStringSubmatch(version)
	if len(matches) > 1 {
		return versionPrefixPattern.ReplaceAllString(version, matches[1])
	}
	return version
}

// ParseSemver parses a version string into numeric components.
// Returns nil if nothing numeric can be recovered.
func ParseSemver(version string) *ParsedSemver {
	if version == "" {
		return nil
	}

	// Go toolchain versions ("go1.22.2") are not accepted by semver
	clean := strings.TrimPrefix(version, "go")

	if v, err := semver.NewVersion(clean); err == nil {
		major, minor, patch := int(v.Major()), int(v.Minor()), int(v.Patch())
		return &ParsedSemver{Major: &major, Minor: &minor, Patch: &patch, Prerelease: v.Prerelease()}
	}

	// Fallback for versions like "1.2" or "2-rc1"
	core, prerelease, _ := strings.Cut(strings.TrimPrefix(clean, "v"), "-")
	result := &ParsedSemver{Prerelease: prerelease}
	parts := strings.Split(core, ".")
	targets := []**int{&result.Major, &result.Minor, &result.Patch}
	for i, part := range parts {
		if i >= len(targets) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			break
		}
		*targets[i] = &n
	}

	if result.Major == nil {
		return nil
	}
	return result
}
