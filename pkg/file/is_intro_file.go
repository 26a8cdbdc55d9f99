package file

import (
	"path"
	"strings"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/constants"
)

// BaseName returns the last path segment of filename, treating both '/' and
// '\' as separators. An empty or blank name stays empty.
func BaseName(filename string) string {
	name := strings.TrimSpace(strings.ReplaceAll(filename, "\\", "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "/" || base == "." {
		return ""
	}
	return base
}

// IsIntroFile reports whether filename designates the intro record:
// "intro" itself or "intro.<anything>", case-insensitive, ignoring any
// directory part.
func IsIntroFile(filename string) bool {
	name := strings.ToLower(BaseName(filename))
	return name == constants.IntroFileStem || strings.HasPrefix(name, constants.IntroFileStem+".")
}
