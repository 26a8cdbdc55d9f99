package file

import (
	"path/filepath"
	"strings"
)

var videoExtensions = []string{".mp4", ".mov", ".m4v", ".webm", ".avi", ".mkv"}

func IsVideoFile(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
