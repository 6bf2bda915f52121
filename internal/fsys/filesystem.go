// Package fsys provides the filesystem seam used by the traversal and
// serialization code. All access goes through an afero.Fs so the walkers can
// be exercised against an in-memory filesystem in tests.
package fsys

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/zegri1/project-to-xml/internal/utils"
)

// Entry describes one child of a directory listing.
type Entry struct {
	Name        string
	IsDirectory bool
}

// ListEntries returns the immediate children of directoryPath sorted by
// bytewise lexicographic name comparison. The ordering is deliberately
// platform independent so repeated runs produce identical output.
func ListEntries(filesystem afero.Fs, directoryPath string) ([]Entry, error) {
	fileInformations, readDirError := afero.ReadDir(filesystem, directoryPath)
	if readDirError != nil {
		return nil, fmt.Errorf("listing directory %s: %w", directoryPath, readDirError)
	}

	entries := make([]Entry, 0, len(fileInformations))
	for _, fileInformation := range fileInformations {
		entries = append(entries, Entry{
			Name:        fileInformation.Name(),
			IsDirectory: fileInformation.IsDir(),
		})
	}
	sort.Slice(entries, func(firstIndex, secondIndex int) bool {
		return entries[firstIndex].Name < entries[secondIndex].Name
	})
	return entries, nil
}

// ReadText reads the file at filePath and returns its content as UTF-8 text.
// Binary or otherwise non-UTF-8 content is rejected with an error so it never
// reaches the XML serializer.
func ReadText(filesystem afero.Fs, filePath string) (string, error) {
	fileBytes, readFileError := afero.ReadFile(filesystem, filePath)
	if readFileError != nil {
		return "", readFileError
	}
	if utils.IsBinary(fileBytes) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", filePath)
	}
	return string(fileBytes), nil
}
