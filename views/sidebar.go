// ABOUTME: Sidebar navigation configuration
// ABOUTME: Navigation entries and kebab-case icon names for the icon set

package views

import (
	"strings"
	"unicode"
)

// SidebarItem is one navigation entry
type SidebarItem struct {
	Label string
	Icon  string
	Href  string
}

// IconName returns the icon in kebab-case ("LayoutDashboard" -> "layout-dashboard")
func (i SidebarItem) IconName() string {
	return KebabCase(i.Icon)
}

// SidebarItems is shown in full to every signed-in user. Access to the
// linked sections is enforced by the upstream, not by the menu.
var SidebarItems = []SidebarItem{
	{Label: "Dashboard", Icon: "LayoutDashboard", Href: "/dashboard"},
	{Label: "Usuários", Icon: "Users", Href: "/users"},
	{Label: "Políticos", Icon: "UserCheck", Href: "/politicians"},
	{Label: "Notificações", Icon: "Bell", Href: "/notifications"},
}

// KebabCase inserts a hyphen at each lower-to-upper boundary and lowercases
func KebabCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
