package news

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"newspage/internal/models"
)

const placeholderLink = "#"

const fragmentTemplates = `
{{define "cards"}}{{range .}}<article class="news-card" data-category="{{.Category}}">
    <div class="meta">
        <span class="category">{{.Label}}</span>{{if .Source}}
        <span class="source">{{.Source}}</span>{{end}}
        <span class="date">{{.Date}}</span>
    </div>
    <h3>{{.Title}}</h3>
    <p>{{.Description}}</p>
    <a href="{{.Link}}" target="_blank" rel="noopener" class="read-more">Read more</a>
</article>
{{end}}{{end}}
{{define "empty"}}<div class="news-empty">
    <p>No news in this category yet</p>
</div>
{{end}}
{{define "error"}}<div class="news-error">
    <p>News is temporarily unavailable, please try again later</p>
    <button type="button" class="btn btn-primary" data-action="reload">Reload</button>
</div>
{{end}}`

var fragments = template.Must(template.New("news").Parse(fragmentTemplates))

// card is the view of one item inside the cards template.
type card struct {
	Category    models.Category
	Label       string
	Source      string
	Date        string
	Title       string
	Description string
	Link        string
}

// Renderer turns news items into HTML fragments.
type Renderer struct {
	dateLayout string
}

// NewRenderer creates a Renderer. An empty layout selects DefaultDateLayout.
func NewRenderer(dateLayout string) *Renderer {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Renderer{dateLayout: dateLayout}
}

// Render writes the cards of the items matching filter, or the empty
// placeholder when nothing matches.
func (r *Renderer) Render(w io.Writer, items []models.NewsItem, filter models.Category, now time.Time) error {
	filtered := Filter(items, filter)
	if len(filtered) == 0 {
		return fragments.ExecuteTemplate(w, "empty", nil)
	}

	cards := make([]card, 0, len(filtered))
	for _, item := range filtered {
		link := item.Link
		if link == "" {
			link = placeholderLink
		}
		cards = append(cards, card{
			Category:    item.Category,
			Label:       Label(item.Category),
			Source:      item.Source,
			Date:        DateLabel(now, item.PublishedAt, r.dateLayout),
			Title:       item.Title,
			Description: item.Description,
			Link:        link,
		})
	}
	return fragments.ExecuteTemplate(w, "cards", cards)
}

// RenderError writes the inline load error with its reload action.
func (r *Renderer) RenderError(w io.Writer) error {
	return fragments.ExecuteTemplate(w, "error", nil)
}

// Fragment renders into a string for embedding in a page template.
func (r *Renderer) Fragment(items []models.NewsItem, filter models.Category, now time.Time) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, items, filter, now); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ErrorFragment is RenderError into a string.
func (r *Renderer) ErrorFragment() (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.RenderError(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
