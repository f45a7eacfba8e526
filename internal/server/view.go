package server

import (
	"html/template"

	"newspage/internal/models"
)

// htmlView collects what the page controller wants shown so a request can
// render it in one pass.
type htmlView struct {
	active    models.Category
	news      template.HTML
	loadError template.HTML
	alerts    []string
	reset     bool
	menuOpen  bool
}

func (v *htmlView) SetActiveFilter(f models.Category) { v.active = f }
func (v *htmlView) ShowNews(f template.HTML)          { v.news = f; v.loadError = "" }
func (v *htmlView) ShowError(f template.HTML)         { v.loadError = f }
func (v *htmlView) Alert(msg string)                  { v.alerts = append(v.alerts, msg) }
func (v *htmlView) ResetForm()                        { v.reset = true }
func (v *htmlView) SetMenuOpen(open bool)             { v.menuOpen = open }

// SetHeaderScrolled and ScrollTo are handled by the browser script.
func (v *htmlView) SetHeaderScrolled(bool) {}
func (v *htmlView) ScrollTo(string) bool   { return false }

func (v *htmlView) lastAlert() string {
	if len(v.alerts) == 0 {
		return ""
	}
	return v.alerts[len(v.alerts)-1]
}
