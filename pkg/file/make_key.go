package file

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxStemLength = 80

// MakeKey builds an object key of the form <folder>/<stem>-<suffix><ext>.
// The random suffix keeps two uploads with the same name from colliding.
func MakeKey(folder, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := path.Ext(base)
	stem := sanitize(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "file"
	}
	if len(stem) > maxStemLength {
		stem = strings.TrimRight(stem[:maxStemLength], "-")
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	key := stem + "-" + suffix + sanitizeExt(ext)
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}
	return key
}

func sanitize(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(ext)
	var b strings.Builder
	for _, r := range ext {
		if r == '.' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() <= 1 {
		return ""
	}
	return b.String()
}
