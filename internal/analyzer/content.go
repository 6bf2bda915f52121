package analyzer

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/zegri1/project-to-xml/internal/fsys"
	"github.com/zegri1/project-to-xml/internal/tokenizer"
	"github.com/zegri1/project-to-xml/internal/types"
)

// readErrorPlaceholderFormat is the diagnostic text embedded in place of a
// file's content when reading it fails.
const readErrorPlaceholderFormat = "Error reading file: %s"

// CollectFiles returns one pending FileEntry per non-excluded file under
// rootPath, applying the stricter content tier. Directories are flattened:
// the result is a single ordered flat list, not a nested tree. Only a failure
// to list the root directory itself is an error.
func (analyzer *Analyzer) CollectFiles(rootPath string) ([]*types.FileEntry, error) {
	entries, collectError := analyzer.collectFileEntries(rootPath, "", true)
	if collectError != nil {
		return nil, fmt.Errorf("collecting files for %s: %w", rootPath, collectError)
	}
	return entries, nil
}

func (analyzer *Analyzer) collectFileEntries(currentDirectoryPath string, relativeDirectory string, isRootLevel bool) ([]*types.FileEntry, error) {
	listedEntries, listError := fsys.ListEntries(analyzer.filesystem, currentDirectoryPath)
	if listError != nil {
		if isRootLevel {
			return nil, listError
		}
		return nil, nil
	}

	var fileEntries []*types.FileEntry
	for _, entry := range listedEntries {
		if analyzer.matcher.IsExcluded(entry.Name, entry.IsDirectory, ModeContent) {
			continue
		}

		childPath := filepath.Join(currentDirectoryPath, entry.Name)
		childRelativePath := path.Join(relativeDirectory, entry.Name)

		if entry.IsDirectory {
			nestedEntries, nestedError := analyzer.collectFileEntries(childPath, childRelativePath, false)
			if nestedError != nil {
				return nil, nestedError
			}
			fileEntries = append(fileEntries, nestedEntries...)
			continue
		}

		fileEntries = append(fileEntries, &types.FileEntry{
			Name:   entry.Name,
			Path:   childRelativePath,
			Status: types.ReadStatusPending,
		})
	}
	return fileEntries, nil
}

// PopulateContents fills each entry's content by reading the referenced file
// under rootPath. Read failures are recorded per entry as a diagnostic
// placeholder and never abort the run. When tokenCounter is non-nil,
// successfully read entries are annotated with their token count.
func (analyzer *Analyzer) PopulateContents(entries []*types.FileEntry, rootPath string, tokenCounter tokenizer.Counter) {
	for _, entry := range entries {
		filePath := filepath.Join(rootPath, filepath.FromSlash(entry.Path))
		fileText, readError := fsys.ReadText(analyzer.filesystem, filePath)
		if readError != nil {
			entry.Content.Text = fmt.Sprintf(readErrorPlaceholderFormat, readError)
			entry.Status = types.ReadStatusError
			continue
		}
		entry.Content.Text = fileText
		entry.Status = types.ReadStatusOK
		if tokenCounter != nil {
			if tokenCount, countError := tokenCounter.CountString(fileText); countError == nil {
				entry.Tokens = tokenCount
			}
		}
	}
}
