package cloner

import (
	"encoding/hex"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
)

// FallbackName is used when no repository name can be parsed from a URL.
const FallbackName = "repository"

var (
	repoNamePattern = regexp.MustCompile(`[/:]([^/:]+?)(?:\.git)?/?$`)
	scpPattern      = regexp.MustCompile(`^(?:[^@/]+@)?([^:/]+):(.+)$`)
)

// ExtractName returns the trailing path segment of a git URL without a .git
// suffix:
//
//	https://github.com/user/repo.git -> repo
//	git@github.com:user/repo.git     -> repo
func ExtractName(rawURL string) string {
	match := repoNamePattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if match == nil || match[1] == "" {
		return FallbackName
	}
	return match[1]
}

// NormalizeURL reduces the spellings of one repository URL to a single
// form, host/owner/repo: scheme, user, .git suffix and trailing slashes are
// dropped and the host is lowercased. Strings that are neither scheme nor
// scp-style URLs (local paths) are only cleaned.
func NormalizeURL(rawURL string) string {
	s := trimRepoSuffix(strings.TrimSpace(rawURL))

	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			host := strings.ToLower(u.Host)
			p := strings.Trim(u.Path, "/")
			if host == "" {
				return "/" + p
			}
			return host + "/" + p
		}
		return s
	}

	if match := scpPattern.FindStringSubmatch(s); match != nil {
		return strings.ToLower(match[1]) + "/" + strings.Trim(match[2], "/")
	}

	return path.Clean(s)
}

// URLHash returns the hex BLAKE3-256 digest of the normalized URL.
func URLHash(rawURL string) string {
	sum := blake3.Sum256([]byte(NormalizeURL(rawURL)))
	return hex.EncodeToString(sum[:])
}

// SameRepository reports whether two URLs normalize to the same repository.
func SameRepository(a, b string) bool {
	return NormalizeURL(a) == NormalizeURL(b)
}

func trimRepoSuffix(s string) string {
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, ".git")
	return strings.TrimRight(s, "/")
}
