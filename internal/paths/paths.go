// Package paths contains the string-level path helpers shared by the build pipeline.
//
// Nothing in this package touches the filesystem: classification is a heuristic on
// the path text, which is what manifest destinations are written in.
package paths

import (
	"path/filepath"
	"strings"
)

// WriteDescriptor is the classification of a destination path. An empty FileName
// means the path denotes a directory and copies keep the source base name.
type WriteDescriptor struct {
	Directory string
	FileName  string
}

// IsDirectory reports whether the descriptor targets a directory.
func (d WriteDescriptor) IsDirectory() bool { return d.FileName == "" }

// Target returns the concrete copy target for a source with the given base name.
func (d WriteDescriptor) Target(sourceBase string) string {
	if d.FileName != "" {
		return d.Directory + "/" + d.FileName
	}
	return d.Directory + "/" + sourceBase
}

// Normalize strips trailing "/." and "/" segments until none remain.
func Normalize(p string) string {
	for {
		switch {
		case strings.HasSuffix(p, "/."):
			p = strings.TrimSuffix(p, "/.")
		case strings.HasSuffix(p, "/"):
			p = strings.TrimSuffix(p, "/")
		default:
			return p
		}
	}
}

// IsFile reports whether p names a file: its last normalized segment contains a dot
// and does not end with one.
func IsFile(p string) bool {
	last := lastSegment(Normalize(p))
	return strings.Contains(last, ".") && !strings.HasSuffix(last, ".")
}

// Standardize turns p into a base suitable for concatenation: "" and "." become "./",
// anything else gets a trailing slash.
func Standardize(p string) string {
	if p == "" || p == "." {
		return "./"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// EnsureRelativePrefix prefixes "./" unless p already starts with it.
func EnsureRelativePrefix(p string) string {
	if strings.HasPrefix(p, "./") {
		return p
	}
	return "./" + p
}

// ToWriteDescriptor classifies p as a file or directory destination.
func ToWriteDescriptor(p string) WriteDescriptor {
	normalized := Normalize(p)
	if !IsFile(p) {
		return WriteDescriptor{Directory: normalized}
	}
	segments := strings.Split(normalized, "/")
	return WriteDescriptor{
		Directory: strings.Join(segments[:len(segments)-1], "/"),
		FileName:  segments[len(segments)-1],
	}
}

// Depth returns how many directory levels file sits below root. Files directly in
// root have depth 0.
func Depth(root, file string) (int, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return 0, err
	}
	return strings.Count(filepath.ToSlash(rel), "/"), nil
}

// DepthPrefix returns "../" repeated n times.
func DepthPrefix(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("../", n)
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
