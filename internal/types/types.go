// Package types defines every cross-package data structure used by the project-to-xml tool.
package types

import "encoding/xml"

// ReadStatus describes the outcome of populating a file entry's content.
type ReadStatus string

const (
	// ReadStatusPending marks an entry whose content has not been read yet.
	ReadStatusPending ReadStatus = "pending"
	// ReadStatusOK marks an entry whose content was read successfully.
	ReadStatusOK ReadStatus = "ok"
	// ReadStatusError marks an entry whose content could not be read; the
	// content text holds a diagnostic placeholder instead.
	ReadStatusError ReadStatus = "error"
)

// Node is a single entry of the structure tree, either a *DirectoryNode or a *FileNode.
// The concrete type determines the emitted XML element name.
type Node interface {
	NodeName() string
}

// DirectoryNode represents one directory of the structure tree. Children keep
// the listing order of the walk and mix directories and files.
type DirectoryNode struct {
	XMLName  xml.Name `xml:"dir"`
	Name     string   `xml:"name,attr"`
	Children []Node
}

// NodeName returns the directory's base name.
func (node *DirectoryNode) NodeName() string { return node.Name }

// FileNode represents one file leaf of the structure tree. Path is relative
// to the analyzed root and uses forward slashes.
type FileNode struct {
	XMLName xml.Name `xml:"file"`
	Name    string   `xml:"name,attr"`
	Path    string   `xml:"path,attr"`
}

// NodeName returns the file's base name.
func (node *FileNode) NodeName() string { return node.Name }

// LiteralContent wraps file text so it is emitted as a CDATA literal section.
// encoding/xml splits any "]]>" terminator inside Text across two sections,
// keeping the document well formed without altering the recovered text.
type LiteralContent struct {
	Text string `xml:",cdata"`
}

// FileEntry is one file of the contents section: its identity plus its
// (possibly failed) text content.
type FileEntry struct {
	XMLName xml.Name       `xml:"file"`
	Name    string         `xml:"name,attr"`
	Path    string         `xml:"path,attr"`
	Tokens  int            `xml:"tokens,attr,omitempty"`
	Content LiteralContent `xml:"content"`
	Status  ReadStatus     `xml:"-"`
}

// StructureSection holds the filtered directory layout of the project.
type StructureSection struct {
	Nodes []Node
}

// ContentsSection holds the flat list of files whose text is embedded.
type ContentsSection struct {
	Files []*FileEntry
}

// Document is the complete analysis result serialized to the output file.
type Document struct {
	XMLName   xml.Name         `xml:"project"`
	Path      string           `xml:"path,attr"`
	Overview  string           `xml:"overview"`
	Structure StructureSection `xml:"structure"`
	Contents  ContentsSection  `xml:"contents"`
}
