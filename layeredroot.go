// Package layeredroot augments a web server's document-root lookup with an
// ordered list of override directories ("layers") searched before the
// document root itself.
package layeredroot

// ScopeConfig holds the layer directives declared in a single configuration
// scope (server, virtual host, or location). The zero value means "nothing
// declared here": Enabled is nil rather than false so an explicit
// `EnableDocumentRootLayers Off` can be told apart from silence.
//
// ScopeConfig is populated during configuration load and must not be
// modified afterward.
type ScopeConfig struct {
	// Enabled is non-nil only when the enable directive appeared in this
	// scope.
	Enabled *bool

	// Layers lists layer directories in declaration order. Duplicates are
	// allowed; order is precedence.
	Layers []string
}

// SetEnabled records an explicit On/Off declaration for this scope.
func (c *ScopeConfig) SetEnabled(on bool) {
	c.Enabled = &on
}

// AddLayers appends layer directories to this scope. Multiple directive
// occurrences within one scope accumulate; precedence follows declaration
// order.
func (c *ScopeConfig) AddLayers(dirs ...string) {
	c.Layers = append(c.Layers, dirs...)
}

// Declared reports whether any layer directive appeared in this scope.
func (c ScopeConfig) Declared() bool {
	return c.Enabled != nil || len(c.Layers) > 0
}

// EffectiveConfig is the configuration actually applied to a request scope
// after merging the scope chain. The zero value carries the defaults:
// disabled, no layers.
type EffectiveConfig struct {
	Enabled bool
	Layers  []string
}

// Merge combines a parent scope's effective configuration with a child
// scope's own declarations. The merge is a shallow field-level override:
// a child that declares its own layer list replaces the parent's list
// entirely (never appends to it), and a child that declares Enabled
// overrides the parent's value. Undeclared fields are inherited unchanged.
//
// Merge is pure and associative along a scope chain applied outermost to
// innermost.
func Merge(parent EffectiveConfig, child ScopeConfig) EffectiveConfig {
	out := parent
	if child.Enabled != nil {
		out.Enabled = *child.Enabled
	}
	if len(child.Layers) > 0 {
		out.Layers = child.Layers
	}
	return out
}
