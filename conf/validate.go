package conf

// forbiddenAncestors are the structural blocks that scope configuration to
// a filesystem path or pattern. Document-root layering below them would be
// scoped under the very mapping it exists to override, so the layer
// directives are rejected there at load time.
var forbiddenAncestors = []string{
	BlockDirectory,
	BlockDirectoryMatch,
	BlockFiles,
	BlockFilesMatch,
}

// ValidateContext walks the parent chain of a directive occurrence up to
// the configuration root and rejects it if any enclosing block is one of
// the forbidden path-scoped blocks. Called for every occurrence of both
// layer directives before any request is served.
func ValidateContext(d *Directive) error {
	for p := d.Parent; p != nil; p = p.Parent {
		for _, name := range forbiddenAncestors {
			if p.Is(name) {
				return &ContextError{Directive: d.Name, Ancestor: p.Name, Line: d.Line}
			}
		}
	}
	return nil
}
