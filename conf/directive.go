// Package conf loads Apache-style directive configuration for layered
// document-root resolution: plain `Name arg...` directives, `<Block arg>`
// containers, and the scope rules that govern where the layer directives
// may appear.
package conf

import "strings"

// Directive names recognized by this module. Directive name matching is
// case-insensitive, following httpd convention.
const (
	DirEnable       = "EnableDocumentRootLayers"
	DirLayers       = "DocumentRootLayers"
	DirDocumentRoot = "DocumentRoot"
	DirServerName   = "ServerName"
	DirListen       = "Listen"
)

// Structural block names. VirtualHost, Location and LocationMatch carry
// request-routing scopes; the remaining four bind configuration to a
// filesystem path or pattern and may not contain layer directives.
const (
	BlockVirtualHost    = "VirtualHost"
	BlockLocation       = "Location"
	BlockLocationMatch  = "LocationMatch"
	BlockDirectory      = "Directory"
	BlockDirectoryMatch = "DirectoryMatch"
	BlockFiles          = "Files"
	BlockFilesMatch     = "FilesMatch"
)

// Directive is one occurrence of a directive in the configuration tree.
// Block directives additionally carry children; the Parent link points at
// the enclosing block (nil at top level) and is only ever traversed
// upward, read-only, for context validation.
type Directive struct {
	Name     string
	Args     []string
	Line     int
	Parent   *Directive
	Children []*Directive
	block    bool
}

// IsBlock reports whether this occurrence is a <Name ...> container.
func (d *Directive) IsBlock() bool {
	return d.block
}

// Is reports whether the directive's name matches, ignoring case.
func (d *Directive) Is(name string) bool {
	return strings.EqualFold(d.Name, name)
}

// Walk visits every directive below the root in document order.
func (d *Directive) Walk(fn func(*Directive)) {
	for _, child := range d.Children {
		fn(child)
		child.Walk(fn)
	}
}
