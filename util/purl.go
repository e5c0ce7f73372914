// Package util provides version, package URL and concurrency helpers shared by the changelog packages.
//
//revive:disable-next-line:var-naming
package util

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// ParsePURL parses a PURL string and returns the parsed PackageURL
func ParsePURL(purlStr string) (*packageurl.PackageURL, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// PurlNameAndVersion returns the display name and version carried by a purl.
// Namespaced packages keep their namespace ("@angular/core", "org.apache/commons").
// Unparseable purls fall back to splitting on the last "/" and "@".
func PurlNameAndVersion(purlStr string) (string, string) {
	if parsed, err := ParsePURL(purlStr); err == nil {
		name := parsed.Name
		if parsed.Namespace != "" {
			name = parsed.Namespace + "/" + parsed.Name
		}
		return name, parsed.Version
	}

	rest := strings.TrimPrefix(purlStr, "pkg:")
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		rest = rest[i+1:]
	}
	name, version, _ := strings.Cut(rest, "@")
	return name, version
}
