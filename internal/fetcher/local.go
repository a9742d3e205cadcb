package fetcher

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sgmodkit/sgmerge/internal/domain"
)

// IsURL reports whether the source descriptor is a network URL rather
// than a filesystem path.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ReadLocal reads a local source file. A missing file and any other read
// problem are distinguished so the summary can report them precisely.
func ReadLocal(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.NewSourceError(p, domain.ErrNotFound)
		}
		return "", domain.NewSourceError(p, err)
	}
	return DecodeText(data), nil
}

// LocalOverridePath resolves the prefer-local candidate for a URL: the
// URL path's base filename looked up in the current directory, the
// executable's directory, and the executable's parent, in that order.
// The first existing regular file wins.
func LocalOverridePath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	base := path.Base(u.Path)
	if base == "" || base == "/" || base == "." {
		return "", false
	}

	candidates := []string{base}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(exeDir, base),
			filepath.Join(filepath.Dir(exeDir), base),
		)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}

	return "", false
}
