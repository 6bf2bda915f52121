package analyzer

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/zegri1/project-to-xml/internal/config"
	"github.com/zegri1/project-to-xml/internal/fsys"
	"github.com/zegri1/project-to-xml/internal/types"
)

// Analyzer walks a project directory through the filesystem seam and produces
// the structure tree and content entries for one run.
type Analyzer struct {
	filesystem afero.Fs
	matcher    Matcher
}

// New creates an analyzer bound to the given filesystem and configuration.
func New(filesystem afero.Fs, configuration config.Configuration) *Analyzer {
	return &Analyzer{
		filesystem: filesystem,
		matcher:    NewMatcher(configuration),
	}
}

// BuildStructure returns the filtered layout of rootPath as an ordered node
// sequence. Only a failure to list the root directory itself is an error;
// unlistable subdirectories are silently treated as empty.
func (analyzer *Analyzer) BuildStructure(rootPath string) ([]types.Node, error) {
	nodes, buildError := analyzer.buildStructureNodes(rootPath, "", true)
	if buildError != nil {
		return nil, fmt.Errorf("building structure for %s: %w", rootPath, buildError)
	}
	return nodes, nil
}

// buildStructureNodes lists one directory and recurses into its non-excluded
// subdirectories. relativeDirectory is the forward-slash path of the directory
// relative to the root, empty for the root itself.
func (analyzer *Analyzer) buildStructureNodes(currentDirectoryPath string, relativeDirectory string, isRootLevel bool) ([]types.Node, error) {
	entries, listError := fsys.ListEntries(analyzer.filesystem, currentDirectoryPath)
	if listError != nil {
		if isRootLevel {
			return nil, listError
		}
		// Permission-denied subdirectories appear as empty, not as errors.
		return nil, nil
	}

	var nodes []types.Node
	for _, entry := range entries {
		if analyzer.matcher.IsExcluded(entry.Name, entry.IsDirectory, ModeStructure) {
			continue
		}

		childPath := filepath.Join(currentDirectoryPath, entry.Name)
		childRelativePath := path.Join(relativeDirectory, entry.Name)

		if entry.IsDirectory {
			childNodes, childError := analyzer.buildStructureNodes(childPath, childRelativePath, false)
			if childError != nil {
				return nil, childError
			}
			nodes = append(nodes, &types.DirectoryNode{
				Name:     entry.Name,
				Children: childNodes,
			})
			continue
		}

		nodes = append(nodes, &types.FileNode{
			Name: entry.Name,
			Path: childRelativePath,
		})
	}
	return nodes, nil
}
