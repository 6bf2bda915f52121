// Package output assembles the analysis document and renders it to XML.
package output

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/zegri1/project-to-xml/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	outputFilePermissions = 0o644
)

// BuildDocument combines the run's overview, structure tree, and content
// entries into a single document rooted at absoluteRootPath.
func BuildDocument(absoluteRootPath string, overviewText string, structureNodes []types.Node, fileEntries []*types.FileEntry) *types.Document {
	return &types.Document{
		Path:      absoluteRootPath,
		Overview:  strings.TrimSpace(overviewText),
		Structure: types.StructureSection{Nodes: structureNodes},
		Contents:  types.ContentsSection{Files: fileEntries},
	}
}

// RenderXML serializes the document as a pretty-printed UTF-8 XML string with
// stable two-space indentation. File text travels inside CDATA literal
// sections; encoding/xml splits any embedded "]]>" terminator across two
// sections so the output stays well formed.
func RenderXML(document *types.Document) (string, error) {
	encoded, marshalError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if marshalError != nil {
		return "", fmt.Errorf("marshaling document for %s: %w", document.Path, marshalError)
	}
	return xml.Header + string(encoded) + "\n", nil
}

// ResolveOutputPath returns explicitPath unchanged when supplied, otherwise
// the default output file name joined under the root.
func ResolveOutputPath(absoluteRootPath string, defaultOutputName string, explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	return filepath.Join(absoluteRootPath, defaultOutputName)
}

// WriteDocument renders the document and writes it to outputPath, truncating
// any existing file. It returns the rendered text so callers can reuse it
// without rendering twice. A write failure is fatal to the run and is
// returned to the caller.
func WriteDocument(filesystem afero.Fs, document *types.Document, outputPath string) (string, error) {
	renderedText, renderError := RenderXML(document)
	if renderError != nil {
		return "", renderError
	}
	if writeError := afero.WriteFile(filesystem, outputPath, []byte(renderedText), outputFilePermissions); writeError != nil {
		return "", fmt.Errorf("writing output to %s: %w", outputPath, writeError)
	}
	return renderedText, nil
}
