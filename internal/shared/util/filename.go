package util

import "strings"

// SlugFileName lowercases name and replaces every character outside [a-z0-9]
// with an underscore. An empty result falls back to "summary".
func SlugFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	if b.Len() == 0 {
		return "summary"
	}
	return b.String()
}

// ExportFileName returns the download name for a single exported summary.
func ExportFileName(title, ext string) string {
	return SlugFileName(title) + "." + strings.TrimPrefix(ext, ".")
}
