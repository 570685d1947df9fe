package auth

import "testing"

func TestGate(t *testing.T) {
	tests := []struct {
		name     string
		authed   bool
		path     string
		redirect string
		ok       bool
	}{
		{"root without session", false, "/", PathLogin, false},
		{"root with session", true, "/", PathDashboard, false},
		{"protected without session", false, "/finances", PathLogin, false},
		{"protected sub-path without session", false, "/documents/download/a.pdf", PathLogin, false},
		{"protected trailing slash", false, "/visa/", PathLogin, false},
		{"protected with session", true, "/visa", "", true},
		{"login without session", false, "/login", "", true},
		{"login with session", true, "/login", PathDashboard, false},
		{"register with session", true, "/register", PathDashboard, false},
		{"unknown path without session", false, "/nowhere", "", true},
		{"unknown path with session", true, "/nowhere", "", true},
		{"prefix lookalike is not protected", false, "/visas", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redirect, ok := Gate(tt.authed, tt.path)
			if redirect != tt.redirect || ok != tt.ok {
				t.Fatalf("Gate(%v, %q) = (%q, %v), want (%q, %v)", tt.authed, tt.path, redirect, ok, tt.redirect, tt.ok)
			}
		})
	}
}

func TestIsProtected(t *testing.T) {
	for _, p := range ProtectedPaths {
		if !IsProtected(p) {
			t.Errorf("%s should be protected", p)
		}
	}
	if IsProtected("/login") {
		t.Error("/login must not be protected")
	}
}
