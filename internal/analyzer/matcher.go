// Package analyzer contains the core traversal logic: the two-tier exclusion
// matcher, the structure and content walkers, and the content serializer.
package analyzer

import (
	"strings"

	"github.com/zegri1/project-to-xml/internal/config"
	"github.com/zegri1/project-to-xml/internal/utils"
)

// Mode selects which exclusion tier applies to a check.
type Mode string

const (
	// ModeStructure applies only the full-exclusion tier, used when building
	// the visible directory layout.
	ModeStructure Mode = "structure"
	// ModeContent applies both tiers, used when deciding which files' text is
	// embedded. It is always at least as restrictive as ModeStructure.
	ModeContent Mode = "content"
)

// Matcher answers exclusion checks for a single resolved configuration.
// All methods are pure; the matcher holds no mutable state.
type Matcher struct {
	fullExcludes    config.ExclusionRules
	contentExcludes config.ExclusionRules
}

// NewMatcher builds a matcher from the run configuration.
func NewMatcher(configuration config.Configuration) Matcher {
	return Matcher{
		fullExcludes:    configuration.FullExcludes,
		contentExcludes: configuration.ContentExcludes,
	}
}

// IsExcluded reports whether the entry with the given base name should be
// excluded under the requested mode. Directories are matched by exact name
// against the folder sets; files are matched against the file patterns.
func (matcher Matcher) IsExcluded(baseName string, isDirectory bool, mode Mode) bool {
	if isDirectory {
		if utils.ContainsString(matcher.fullExcludes.Folders, baseName) {
			return true
		}
		return mode == ModeContent && utils.ContainsString(matcher.contentExcludes.Folders, baseName)
	}
	if matchesAnyPattern(baseName, matcher.fullExcludes.Files) {
		return true
	}
	return mode == ModeContent && matchesAnyPattern(baseName, matcher.contentExcludes.Files)
}

// matchesAnyPattern reports whether baseName matches one of the file patterns.
// A pattern starting with "*" matches by suffix; any other pattern requires
// exact equality. Matching is case sensitive.
func matchesAnyPattern(baseName string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(baseName, pattern[1:]) {
				return true
			}
			continue
		}
		if baseName == pattern {
			return true
		}
	}
	return false
}
