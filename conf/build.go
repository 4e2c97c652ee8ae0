package conf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/layerkit/layeredroot"
)

// Location is a request-routing scope bound to a URI prefix (Location) or
// pattern (LocationMatch).
type Location struct {
	Path      string
	Config    layeredroot.ScopeConfig
	Effective layeredroot.EffectiveConfig

	re *regexp.Regexp // non-nil for LocationMatch
}

// Matches reports whether the location applies to a request path.
func (l *Location) Matches(reqPath string) bool {
	if l.re != nil {
		return l.re.MatchString(reqPath)
	}
	return reqPath == l.Path || strings.HasPrefix(reqPath, strings.TrimSuffix(l.Path, "/")+"/")
}

// VirtualHost is the scope declared by a <VirtualHost addr> block.
type VirtualHost struct {
	Addr         string
	ServerName   string
	DocumentRoot string
	Config       layeredroot.ScopeConfig
	Effective    layeredroot.EffectiveConfig
	Locations    []*Location
}

// Site is the loaded configuration: the server scope plus its virtual
// hosts and locations, each with its effective layer configuration derived
// at load end. Immutable once Load returns.
type Site struct {
	Listen       string
	ServerName   string
	DocumentRoot string
	Config       layeredroot.ScopeConfig
	Effective    layeredroot.EffectiveConfig
	Hosts        []*VirtualHost
	Locations    []*Location
}

// Load parses and builds a site configuration from a file.
func Load(fsys afero.Fs, name string) (*Site, error) {
	root, err := ParseFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return Build(root)
}

// Build turns a parsed directive tree into a Site. All load-time checks
// happen here: context validation for every layer-directive occurrence,
// argument arity, and On/Off literal validation. Any failure is fatal;
// a Site is never built from an invalid tree.
func Build(root *Directive) (*Site, error) {
	if err := validateTree(root); err != nil {
		return nil, err
	}

	site := &Site{}
	for _, d := range root.Children {
		switch {
		case d.Is(BlockVirtualHost):
			vh, err := buildVirtualHost(d)
			if err != nil {
				return nil, err
			}
			site.Hosts = append(site.Hosts, vh)
		case d.Is(BlockLocation) || d.Is(BlockLocationMatch):
			loc, err := buildLocation(d)
			if err != nil {
				return nil, err
			}
			site.Locations = append(site.Locations, loc)
		case d.IsBlock():
			// Other structural blocks belong to the host server; layer
			// directives inside them were rejected by validateTree.
		case d.Is(DirDocumentRoot):
			if err := oneArg(d); err != nil {
				return nil, err
			}
			site.DocumentRoot = d.Args[0]
		case d.Is(DirListen):
			if err := oneArg(d); err != nil {
				return nil, err
			}
			site.Listen = d.Args[0]
		case d.Is(DirServerName):
			if err := oneArg(d); err != nil {
				return nil, err
			}
			site.ServerName = d.Args[0]
		case d.Is(DirEnable), d.Is(DirLayers):
			if err := applyLayerDirective(&site.Config, d); err != nil {
				return nil, err
			}
		}
	}

	// Derive effective configurations outermost to innermost.
	site.Effective = layeredroot.Merge(layeredroot.EffectiveConfig{}, site.Config)
	for _, loc := range site.Locations {
		loc.Effective = layeredroot.Merge(site.Effective, loc.Config)
	}
	for _, vh := range site.Hosts {
		if vh.DocumentRoot == "" {
			vh.DocumentRoot = site.DocumentRoot
		}
		vh.Effective = layeredroot.Merge(site.Effective, vh.Config)
		for _, loc := range vh.Locations {
			loc.Effective = layeredroot.Merge(vh.Effective, loc.Config)
		}
	}
	return site, nil
}

// validateTree runs context validation over every occurrence of the two
// layer directives, anywhere in the tree, before any scope is built.
func validateTree(root *Directive) error {
	var firstErr error
	root.Walk(func(d *Directive) {
		if firstErr != nil || d.IsBlock() {
			return
		}
		if d.Is(DirEnable) || d.Is(DirLayers) {
			firstErr = ValidateContext(d)
		}
	})
	return firstErr
}

func buildVirtualHost(block *Directive) (*VirtualHost, error) {
	vh := &VirtualHost{Addr: strings.Join(block.Args, " ")}
	for _, d := range block.Children {
		switch {
		case d.Is(BlockLocation) || d.Is(BlockLocationMatch):
			loc, err := buildLocation(d)
			if err != nil {
				return nil, err
			}
			vh.Locations = append(vh.Locations, loc)
		case d.IsBlock():
			// see Build
		case d.Is(DirDocumentRoot):
			if err := oneArg(d); err != nil {
				return nil, err
			}
			vh.DocumentRoot = d.Args[0]
		case d.Is(DirServerName):
			if err := oneArg(d); err != nil {
				return nil, err
			}
			vh.ServerName = d.Args[0]
		case d.Is(DirEnable), d.Is(DirLayers):
			if err := applyLayerDirective(&vh.Config, d); err != nil {
				return nil, err
			}
		}
	}
	return vh, nil
}

func buildLocation(block *Directive) (*Location, error) {
	if len(block.Args) != 1 {
		return nil, fmt.Errorf("line %d: <%s> takes one argument", block.Line, block.Name)
	}
	loc := &Location{Path: block.Args[0]}
	if block.Is(BlockLocationMatch) {
		re, err := regexp.Compile(block.Args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: <%s %s>: %w", block.Line, block.Name, block.Args[0], err)
		}
		loc.re = re
	}
	for _, d := range block.Children {
		if d.IsBlock() {
			continue
		}
		if d.Is(DirEnable) || d.Is(DirLayers) {
			if err := applyLayerDirective(&loc.Config, d); err != nil {
				return nil, err
			}
		}
	}
	return loc, nil
}

// applyLayerDirective folds one directive occurrence into its owning
// scope's config. Occurrences within one scope accumulate.
func applyLayerDirective(sc *layeredroot.ScopeConfig, d *Directive) error {
	if d.Is(DirEnable) {
		if len(d.Args) != 1 {
			return &ValueError{Directive: d.Name, Value: strings.Join(d.Args, " "), Line: d.Line}
		}
		switch {
		case strings.EqualFold(d.Args[0], "On"):
			sc.SetEnabled(true)
		case strings.EqualFold(d.Args[0], "Off"):
			sc.SetEnabled(false)
		default:
			return &ValueError{Directive: d.Name, Value: d.Args[0], Line: d.Line}
		}
		return nil
	}
	if len(d.Args) == 0 {
		return fmt.Errorf("line %d: %s takes one or more directory paths", d.Line, d.Name)
	}
	sc.AddLayers(d.Args...)
	return nil
}

func oneArg(d *Directive) error {
	if len(d.Args) != 1 {
		return fmt.Errorf("line %d: %s takes exactly one argument", d.Line, d.Name)
	}
	return nil
}

// Scope resolves the request-routing scope for a host and request path,
// returning the document root and effective layer configuration to use.
// All matching locations are folded in declaration order, so a later
// matching location's declarations override an earlier one's.
func (s *Site) Scope(host, reqPath string) (string, layeredroot.EffectiveConfig) {
	docRoot := s.DocumentRoot
	eff := s.Effective
	locations := s.Locations

	if vh := s.MatchHost(host); vh != nil {
		docRoot = vh.DocumentRoot
		eff = vh.Effective
		locations = vh.Locations
	}
	for _, loc := range locations {
		if loc.Matches(reqPath) {
			eff = layeredroot.Merge(eff, loc.Config)
		}
	}
	return docRoot, eff
}

// MatchHost returns the virtual host whose ServerName matches the request
// host (port stripped), or nil when the server scope should serve it.
func (s *Site) MatchHost(host string) *VirtualHost {
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	for _, vh := range s.Hosts {
		if strings.EqualFold(vh.ServerName, host) {
			return vh
		}
	}
	return nil
}
