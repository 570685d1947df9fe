package web

import (
	"strings"
	"unicode"

	"github.com/yigit/studentportal/internal/pkg/auth"
)

// NavItem is one entry of the sidebar and mobile navigation
type NavItem struct {
	Label string
	Path  string
	Icon  string
}

// NavItems are the pages reachable from the signed-in layout
var NavItems = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "home"},
	{Label: "Documents", Path: "/documents", Icon: "file"},
	{Label: "Finances", Path: "/finances", Icon: "card"},
	{Label: "Visa & Residency", Path: "/visa", Icon: "globe"},
	{Label: "Services", Path: "/services", Icon: "building"},
	{Label: "Support", Path: "/support", Icon: "help"},
	{Label: "Profile", Path: "/profile", Icon: "user"},
}

// MobileNavItems is the short bottom bar shown on small screens
var MobileNavItems = NavItems[:5]

// Tab is one tab heading of a page
type Tab struct {
	Key   string
	Label string
}

// Page is the data every template receives
type Page struct {
	Title   string
	Path    string
	User    *auth.User
	Tabs    []Tab
	Success string
	Error   string
	Data    interface{}
}

// Authenticated reports whether the page renders inside the signed-in layout
func (p Page) Authenticated() bool {
	return p.User != nil
}

// Nav returns the navigation entries
func (p Page) Nav() []NavItem {
	return NavItems
}

// MobileNav returns the bottom bar entries
func (p Page) MobileNav() []NavItem {
	return MobileNavItems
}

// IsActive reports whether item is the current page
func (p Page) IsActive(item NavItem) bool {
	return p.Path == item.Path || strings.HasPrefix(p.Path, item.Path+"/")
}

// Initials returns up to two initials of the signed-in student
func (p Page) Initials() string {
	if p.User == nil {
		return ""
	}
	var initials []rune
	for _, part := range strings.Fields(p.User.Name) {
		initials = append(initials, unicode.ToUpper([]rune(part)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
