package layeredroot

import "os"

// probe stats a candidate path and returns its metadata, or nil when no
// usable file exists there. Every failure mode (absence, permission
// denied, I/O error) is treated identically as "no candidate here" so a
// broken layer directory degrades to a skipped layer rather than a failed
// request. Only regular files qualify: a directory hit cannot be handed to
// the host as a servable file.
func (r *Resolver) probe(name string) os.FileInfo {
	info, err := r.fs.Stat(name)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Debug("layer probe failed", "path", name, "error", err)
		}
		return nil
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	return info
}
