package utils

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var alphanumericalRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var supportedExtensions = []string{
	".wav",
	".mp3",
	".aac",
	".m4a",
	".png",
	".jpg",
	".jpeg",
	".mp4",
	".mov",
}

// ValidAssetFilename reports whether a supplied input asset has a sane
// name and a supported extension.
func ValidAssetFilename(filename string) bool {
	extension := strings.ToLower(filepath.Ext(filename))
	name := filename[:len(filename)-len(extension)]
	return alphanumericalRegex.MatchString(name) && lo.Contains(supportedExtensions, extension)
}

func FixFilename(path string) string {
	filename := filepath.Base(path)
	newFilename := strings.Replace(filepath.Clean(filename), " ", "_", -1)
	newPath := filepath.Join(filepath.Dir(path), newFilename)
	return newPath
}

func IsDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}
