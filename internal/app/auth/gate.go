// Package auth decides, from the session state alone, which page a request may see.
package auth

import "strings"

// Portal paths
const (
	PathRoot      = "/"
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// ProtectedPaths require a signed-in student, including their sub-paths
var ProtectedPaths = []string{
	"/dashboard",
	"/documents",
	"/finances",
	"/visa",
	"/support",
	"/profile",
	"/services",
}

// guestPaths are only shown without a session
var guestPaths = []string{PathLogin, PathRegister}

// IsProtected reports whether path needs a session
func IsProtected(path string) bool {
	return matchAny(path, ProtectedPaths)
}

// Gate returns the redirect target for a request to path, or ok when the page
// should be rendered. Unknown paths render so the catch-all can answer them.
func Gate(isAuthenticated bool, path string) (redirect string, ok bool) {
	path = normalize(path)

	switch {
	case path == PathRoot:
		if isAuthenticated {
			return PathDashboard, false
		}
		return PathLogin, false
	case matchAny(path, ProtectedPaths):
		if !isAuthenticated {
			return PathLogin, false
		}
	case matchAny(path, guestPaths):
		if isAuthenticated {
			return PathDashboard, false
		}
	}
	return "", true
}

func normalize(path string) string {
	if path == "" {
		return PathRoot
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return PathRoot
		}
	}
	return path
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
