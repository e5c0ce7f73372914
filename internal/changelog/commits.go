package changelog

import (
	"regexp"
	"strings"

	"github.com/ortelius/pdvd-changelog/model"
)

// Change types in display order. Breaking commits are grouped first.
const (
	ChangeTypeBreaking = "BREAKING CHANGES"
	ChangeTypeOthers   = "others"
)

var changeTypeOrder = []string{
	ChangeTypeBreaking,
	"feat", "fix", "perf", "refactor", "docs", "style", "test", "build", "ci", "chore", "revert",
	ChangeTypeOthers,
}

// conventionalCommitPattern matches "type(scope)!: subject".
var conventionalCommitPattern = regexp.MustCompile(`^(\w+)(?:\(([\w\-./ ]+)\))?(!)?:\s*(.+)`)

// parseCommit classifies a commit by its conventional commit header.
// Unknown types fall into "others".
func parseCommit(c model.Commit) CodeCommit {
	result := CodeCommit{
		CommitID:   c.CommitID,
		CommitURI:  c.URI,
		Message:    c.Message,
		Author:     c.Author,
		Email:      c.Email,
		ChangeType: ChangeTypeOthers,
	}

	header, body, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	if m := conventionalCommitPattern.FindStringSubmatch(header); m != nil {
		changeType := strings.ToLower(m[1])
		if knownChangeType(changeType) {
			result.ChangeType = changeType
			result.Scope = m[2]
			result.Breaking = m[3] == "!"
		}
	}
	if strings.Contains(body, "BREAKING CHANGE") {
		result.Breaking = true
	}
	return result
}

func knownChangeType(t string) bool {
	for _, known := range changeTypeOrder[1 : len(changeTypeOrder)-1] {
		if t == known {
			return true
		}
	}
	return false
}

func parseCommits(commits []model.Commit) []CodeCommit {
	result := make([]CodeCommit, 0, len(commits))
	for _, c := range commits {
		result = append(result, parseCommit(c))
	}
	return result
}

// groupCommits buckets commits by change type in display order, dropping
// empty groups. Breaking commits only appear under BREAKING CHANGES.
func groupCommits(commits []CodeCommit) []CommitsByType {
	buckets := map[string][]CodeCommit{}
	for _, c := range commits {
		key := c.ChangeType
		if c.Breaking {
			key = ChangeTypeBreaking
		}
		buckets[key] = append(buckets[key], c)
	}

	groups := make([]CommitsByType, 0, len(buckets))
	for _, t := range changeTypeOrder {
		if len(buckets[t]) > 0 {
			groups = append(groups, CommitsByType{ChangeType: t, Commits: buckets[t]})
		}
	}
	return groups
}
