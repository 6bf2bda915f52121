// Package config defines the resolved analyzer configuration and its loading rules.
package config

import (
	"github.com/zegri1/project-to-xml/internal/utils"
)

const (
	// ConfigFileName is the conventional name of the JSON override file.
	ConfigFileName = "analyzer_config.json"
	// DefaultOutputFileName is the output file name used when the caller does not supply one.
	DefaultOutputFileName = "project_structure.xml"
	// defaultProjectOverview is the overview text used when no override supplies one.
	defaultProjectOverview = "Project structure analysis"
)

// ExclusionRules holds one exclusion tier: directory names excluded by base
// name and file patterns excluded by exact name or "*"-prefixed suffix glob.
type ExclusionRules struct {
	Folders []string `mapstructure:"folders" json:"folders"`
	Files   []string `mapstructure:"files" json:"files"`
}

// Configuration is the immutable resolved configuration for a single run.
// FullExcludes hides entries from both the structure and contents sections;
// ContentExcludes additionally hides file text from the contents section only.
type Configuration struct {
	FullExcludes      ExclusionRules `mapstructure:"full_excludes" json:"full_excludes"`
	ContentExcludes   ExclusionRules `mapstructure:"content_excludes" json:"content_excludes"`
	DefaultOutputName string         `mapstructure:"default_output_name" json:"default_output_name"`
	ProjectOverview   string         `mapstructure:"project_overview" json:"project_overview"`
}

// DefaultConfiguration returns the built-in configuration used when no
// override file is present.
func DefaultConfiguration() Configuration {
	return Configuration{
		FullExcludes: ExclusionRules{
			Folders: []string{
				".git",
				"node_modules",
				"__pycache__",
				".venv",
				"venv",
				"env",
				".idea",
				".vscode",
				"dist",
				"build",
				"eggs",
				".eggs",
				".pytest_cache",
				".mypy_cache",
				".coverage",
				".tox",
			},
			Files: []string{
				".DS_Store",
				"*.pyc",
				"*.pyo",
				"*.pyd",
				"*.so",
				"*.dylib",
				"*.dll",
				".gitignore",
				".coverage",
				".python-version",
			},
		},
		ContentExcludes: ExclusionRules{
			Folders: []string{
				"migrations",
				"static",
				"media",
			},
			Files: []string{
				"__init__.py",
				"*.log",
				"*.pkl",
				"*.pdf",
				"*.jpg",
				"*.png",
				"*.svg",
				"*.sqlite3",
				"*.db",
				"*.csv",
				"*.json",
				"*.xml",
				"*.yaml",
				"*.yml",
				"*.env",
				"*.lock",
				"requirements.txt",
			},
		},
		DefaultOutputName: DefaultOutputFileName,
		ProjectOverview:   defaultProjectOverview,
	}
}

// Merge overlays override onto the receiver returning the combined configuration.
// The merge is shallow: a top-level key supplied by the override replaces the
// receiver's value for that key entirely.
func (configuration Configuration) Merge(override Configuration) Configuration {
	result := configuration
	if override.FullExcludes.isSupplied() {
		result.FullExcludes = override.FullExcludes.normalized()
	}
	if override.ContentExcludes.isSupplied() {
		result.ContentExcludes = override.ContentExcludes.normalized()
	}
	if override.DefaultOutputName != "" {
		result.DefaultOutputName = override.DefaultOutputName
	}
	if override.ProjectOverview != "" {
		result.ProjectOverview = override.ProjectOverview
	}
	return result
}

// isSupplied reports whether the override file provided this tier at all.
func (rules ExclusionRules) isSupplied() bool {
	return rules.Folders != nil || rules.Files != nil
}

// normalized returns a copy of the rules with duplicate patterns removed.
func (rules ExclusionRules) normalized() ExclusionRules {
	return ExclusionRules{
		Folders: utils.DeduplicatePatterns(rules.Folders),
		Files:   utils.DeduplicatePatterns(rules.Files),
	}
}
