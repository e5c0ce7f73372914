package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanVersion(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"branch prefix":  {input: "main-v12.0.1376-g7ac6f3", want: "12.0.1376-g7ac6f3"},
		"develop prefix": {input: "develop-v2.3.4", want: "2.3.4"},
		"plain v":        {input: "v1.2.3", want: "v1.2.3"},
		"empty":          {input: "", want: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanVersion(tt.input))
		})
	}
}

func TestParseSemver(t *testing.T) {
	t.Run("full semver", func(t *testing.T) {
		v := ParseSemver("v1.2.3-rc.1")
		require.NotNil(t, v)
		assert.Equal(t, 1, *v.Major)
		assert.Equal(t, 2, *v.Minor)
		assert.Equal(t, 3, *v.Patch)
		assert.Equal(t, "rc.1", v.Prerelease)
	})

	t.Run("go toolchain version", func(t *testing.T) {
		v := ParseSemver("go1.22.2")
		require.NotNil(t, v)
		assert.Equal(t, 22, *v.Minor)
	})

	t.Run("not a version", func(t *testing.T) {
		assert.Nil(t, ParseSemver("latest"))
		assert.Nil(t, ParseSemver(""))
	})
}

func TestPurlNameAndVersion(t *testing.T) {
	tests := map[string]struct {
		purl        string
		wantName    string
		wantVersion string
	}{
		"npm":        {purl: "pkg:npm/lodash@4.17.21", wantName: "lodash", wantVersion: "4.17.21"},
		"scoped npm": {purl: "pkg:npm/%40angular/core@16.0.0", wantName: "@angular/core", wantVersion: "16.0.0"},
		"maven":      {purl: "pkg:maven/org.apache.commons/commons-lang3@3.12.0", wantName: "org.apache.commons/commons-lang3", wantVersion: "3.12.0"},
		"no version": {purl: "pkg:pypi/requests", wantName: "requests", wantVersion: ""},
		"not a purl": {purl: "a@1", wantName: "a", wantVersion: "1"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gotName, gotVersion := PurlNameAndVersion(tt.purl)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantVersion, gotVersion)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("should accept RFC3339 with offset", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-01-02T03:04:05+02:00")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC), ts.UTC())
	})

	t.Run("should read a bare date as UTC midnight", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-01-02")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ts)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		assert.Error(t, err)
	})
}
