package analyzer

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/zegri1/project-to-xml/internal/types"
)

const testRootPath = "/project"

func newTestFilesystem(t *testing.T) afero.Fs {
	t.Helper()
	filesystem := afero.NewMemMapFs()
	testFiles := map[string]string{
		"/project/a.txt":                  "hello",
		"/project/b.png":                  "not really an image",
		"/project/.git/config":            "[core]",
		"/project/node_modules/pkg/i.js":  "x",
		"/project/src/main.go":            "package main",
		"/project/src/sub/util.go":        "package sub",
		"/project/migrations/0001_up.sql": "CREATE TABLE t;",
	}
	for filePath, fileContent := range testFiles {
		if writeError := afero.WriteFile(filesystem, filePath, []byte(fileContent), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", filePath, writeError)
		}
	}
	return filesystem
}

func newTestAnalyzer(t *testing.T) (*Analyzer, afero.Fs) {
	t.Helper()
	filesystem := newTestFilesystem(t)
	return New(filesystem, testConfiguration()), filesystem
}

func TestBuildStructureFiltersAndSorts(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)

	structureNodes, structureError := projectAnalyzer.BuildStructure(testRootPath)
	if structureError != nil {
		t.Fatalf("BuildStructure error: %v", structureError)
	}

	expectedNames := []string{"a.txt", "b.png", "migrations", "src"}
	if len(structureNodes) != len(expectedNames) {
		t.Fatalf("expected %d top-level nodes, got %d", len(expectedNames), len(structureNodes))
	}
	for nodeIndex, expectedName := range expectedNames {
		if structureNodes[nodeIndex].NodeName() != expectedName {
			t.Fatalf("node %d: expected %q, got %q", nodeIndex, expectedName, structureNodes[nodeIndex].NodeName())
		}
	}

	fileNode, isFileNode := structureNodes[0].(*types.FileNode)
	if !isFileNode {
		t.Fatalf("expected a.txt to be a file node, got %T", structureNodes[0])
	}
	if fileNode.Path != "a.txt" {
		t.Fatalf("expected relative path a.txt, got %q", fileNode.Path)
	}

	sourceDirectory, isDirectoryNode := structureNodes[3].(*types.DirectoryNode)
	if !isDirectoryNode {
		t.Fatalf("expected src to be a directory node, got %T", structureNodes[3])
	}
	if len(sourceDirectory.Children) != 2 {
		t.Fatalf("expected 2 children under src, got %d", len(sourceDirectory.Children))
	}
	nestedFile, isNestedFile := sourceDirectory.Children[0].(*types.FileNode)
	if !isNestedFile || nestedFile.Path != "src/main.go" {
		t.Fatalf("expected src/main.go file node, got %#v", sourceDirectory.Children[0])
	}
	nestedDirectory, isNestedDirectory := sourceDirectory.Children[1].(*types.DirectoryNode)
	if !isNestedDirectory || nestedDirectory.Name != "sub" {
		t.Fatalf("expected sub directory node, got %#v", sourceDirectory.Children[1])
	}
}

func TestCollectFilesFlattensAndUsesContentTier(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)

	fileEntries, collectError := projectAnalyzer.CollectFiles(testRootPath)
	if collectError != nil {
		t.Fatalf("CollectFiles error: %v", collectError)
	}

	// b.png and migrations/ pass the structure tier but not the content tier.
	expectedPaths := []string{"a.txt", "src/main.go", "src/sub/util.go"}
	if len(fileEntries) != len(expectedPaths) {
		t.Fatalf("expected %d entries, got %d", len(expectedPaths), len(fileEntries))
	}
	for entryIndex, expectedPath := range expectedPaths {
		entry := fileEntries[entryIndex]
		if entry.Path != expectedPath {
			t.Fatalf("entry %d: expected path %q, got %q", entryIndex, expectedPath, entry.Path)
		}
		if entry.Status != types.ReadStatusPending {
			t.Fatalf("entry %d: expected pending status, got %q", entryIndex, entry.Status)
		}
		if entry.Content.Text != "" {
			t.Fatalf("entry %d: expected unpopulated content", entryIndex)
		}
	}
}

func TestPopulateContentsFillsTextAndStatus(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)

	fileEntries, collectError := projectAnalyzer.CollectFiles(testRootPath)
	if collectError != nil {
		t.Fatalf("CollectFiles error: %v", collectError)
	}
	projectAnalyzer.PopulateContents(fileEntries, testRootPath, nil)

	if fileEntries[0].Content.Text != "hello" {
		t.Fatalf("expected a.txt content %q, got %q", "hello", fileEntries[0].Content.Text)
	}
	for _, entry := range fileEntries {
		if entry.Status != types.ReadStatusOK {
			t.Fatalf("entry %s: expected ok status, got %q", entry.Path, entry.Status)
		}
	}
}

func TestPopulateContentsRecordsReadErrors(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)

	// Simulates a file deleted between the listing pass and the read.
	missingEntry := &types.FileEntry{Name: "gone.txt", Path: "gone.txt", Status: types.ReadStatusPending}
	projectAnalyzer.PopulateContents([]*types.FileEntry{missingEntry}, testRootPath, nil)

	if missingEntry.Status != types.ReadStatusError {
		t.Fatalf("expected error status, got %q", missingEntry.Status)
	}
	if !strings.HasPrefix(missingEntry.Content.Text, "Error reading file: ") {
		t.Fatalf("expected diagnostic placeholder, got %q", missingEntry.Content.Text)
	}
}

func TestPopulateContentsRejectsBinaryData(t *testing.T) {
	projectAnalyzer, filesystem := newTestAnalyzer(t)
	if writeError := afero.WriteFile(filesystem, "/project/blob.bin", []byte{0x00, 0x01, 0xff}, 0o644); writeError != nil {
		t.Fatalf("write blob: %v", writeError)
	}

	binaryEntry := &types.FileEntry{Name: "blob.bin", Path: "blob.bin", Status: types.ReadStatusPending}
	projectAnalyzer.PopulateContents([]*types.FileEntry{binaryEntry}, testRootPath, nil)

	if binaryEntry.Status != types.ReadStatusError {
		t.Fatalf("expected error status for binary file, got %q", binaryEntry.Status)
	}
	if !strings.HasPrefix(binaryEntry.Content.Text, "Error reading file: ") {
		t.Fatalf("expected diagnostic placeholder, got %q", binaryEntry.Content.Text)
	}
}

type lengthCounter struct{}

func (lengthCounter) Name() string { return "length" }

func (lengthCounter) CountString(input string) (int, error) { return len(input), nil }

func TestPopulateContentsCountsTokens(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)

	entry := &types.FileEntry{Name: "a.txt", Path: "a.txt", Status: types.ReadStatusPending}
	projectAnalyzer.PopulateContents([]*types.FileEntry{entry}, testRootPath, lengthCounter{})

	if entry.Tokens != len("hello") {
		t.Fatalf("expected %d tokens, got %d", len("hello"), entry.Tokens)
	}
}

func TestBuildStructureFailsForUnreadableRoot(t *testing.T) {
	projectAnalyzer, _ := newTestAnalyzer(t)
	if _, structureError := projectAnalyzer.BuildStructure("/does-not-exist"); structureError == nil {
		t.Fatalf("expected error for missing root")
	}
	if _, collectError := projectAnalyzer.CollectFiles("/does-not-exist"); collectError == nil {
		t.Fatalf("expected error for missing root")
	}
}

// deniedDirectoryFs wraps a filesystem and refuses to open one directory,
// standing in for a permission-denied subdirectory.
type deniedDirectoryFs struct {
	afero.Fs
	deniedPath string
}

func (filesystem deniedDirectoryFs) Open(name string) (afero.File, error) {
	if name == filesystem.deniedPath {
		return nil, os.ErrPermission
	}
	return filesystem.Fs.Open(name)
}

func TestWalkersTreatUnlistableSubdirectoryAsEmpty(t *testing.T) {
	baseFilesystem := newTestFilesystem(t)
	filesystem := deniedDirectoryFs{Fs: baseFilesystem, deniedPath: "/project/src"}
	projectAnalyzer := New(filesystem, testConfiguration())

	structureNodes, structureError := projectAnalyzer.BuildStructure(testRootPath)
	if structureError != nil {
		t.Fatalf("BuildStructure error: %v", structureError)
	}
	for _, node := range structureNodes {
		if directoryNode, isDirectory := node.(*types.DirectoryNode); isDirectory && directoryNode.Name == "src" {
			if len(directoryNode.Children) != 0 {
				t.Fatalf("expected denied directory to appear empty, got %d children", len(directoryNode.Children))
			}
		}
	}

	fileEntries, collectError := projectAnalyzer.CollectFiles(testRootPath)
	if collectError != nil {
		t.Fatalf("CollectFiles error: %v", collectError)
	}
	for _, entry := range fileEntries {
		if strings.HasPrefix(entry.Path, "src/") {
			t.Fatalf("unexpected entry %q under denied directory", entry.Path)
		}
	}
}
