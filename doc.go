/*
Package layeredroot decides which file a web server should serve for a
request by searching an ordered list of override directories ("layers")
before the scope's document root.

# Overview

A layer is an ordinary directory holding a partial copy of the content
tree. Before the server maps a request path under its document root, the
resolver probes each configured layer in declared order; the first layer
containing a matching file wins and supplies both the path and the file
metadata for the response. If no layer matches, the server's normal
document-root mapping proceeds unchanged.

This enables incremental content overrides, such as a seasonal promotion
or a staged redesign, without duplicating the whole content tree.

# Layer Resolution

Resolution is a pure walk over the effective configuration:

  - Disabled scope: no override, immediately.
  - For each layer in declaration order, build a candidate path and stat
    it. The first regular file found is the override; nothing after it is
    consulted.
  - Absolute layer directories are used as-is; relative ones are anchored
    at the document root of the request's scope.
  - Probe failures of any kind (missing file, permission denied, I/O
    error) mean "skip this layer", never a request error.

# Configuration Scopes

Layer directives may be declared at server, virtual-host, and location
scope. Inner scopes inherit from outer ones with shallow field-level
override semantics: a scope that declares its own layer list replaces the
inherited list entirely rather than extending it, while multiple
occurrences of the directive within one scope accumulate. See the conf
package for the directive syntax and its load-time validation.

# Basic Usage

	resolver := layeredroot.New()

	cfg := layeredroot.EffectiveConfig{
	    Enabled: true,
	    Layers:  []string{"layered/xmas", "layered/promo"},
	}

	if ov := resolver.Resolve(cfg, "/srv/www", "/banner.png"); ov != nil {
	    // Serve ov.Path using ov.Info; skip the document-root mapping.
	} else {
	    // Fall through to normal document-root handling.
	}

# Concurrency

Effective configurations are immutable after configuration load, and the
resolver keeps no per-request state, so one Resolver may be shared by any
number of concurrent request workers without locking. The only shared
resource touched is the filesystem, read-only.
*/
package layeredroot
