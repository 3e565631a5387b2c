// ABOUTME: Server-side page rendering with html/template
// ABOUTME: Templates are embedded; each page is parsed together with the shared layout

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/edududs/PoliticSystem/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageHome        = "home"
	PageHomeAnon    = "home_anon"
	PageLogin       = "login"
	PageProfile     = "perfil"
	layoutTemplate  = "layout.html"
	layoutEntryName = "layout"
)

var pages = []string{PageHome, PageHomeAnon, PageLogin, PageProfile}

// HomeData feeds the authenticated home page
type HomeData struct {
	User    *models.User
	Age     int
	HasAge  bool
	Sidebar []SidebarItem
}

// ProfileData feeds the profile page
type ProfileData struct {
	User *models.User
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"buttonClass": ButtonClass,
	"inputClass":  InputClass,
	"formatDate":  FormatDate,
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New(layoutTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutTemplate, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes page into a buffer and writes it with status. Nothing is
// written if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutEntryName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// FormatDate renders a date the way Brazilian users read it (dd/mm/yyyy)
func FormatDate(d *models.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Time.Format("02/01/2006")
}

// NewHomeData builds the authenticated home view model
func NewHomeData(user *models.User, now time.Time) HomeData {
	age, ok := Age(user.DateBirth, now)
	return HomeData{User: user, Age: age, HasAge: ok, Sidebar: SidebarItems}
}
