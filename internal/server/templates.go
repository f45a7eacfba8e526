package server

import (
	"embed"
	"html/template"

	"newspage/internal/models"
	"newspage/internal/news"
)

//go:embed static
var staticFS embed.FS

type filterButton struct {
	Category models.Category
	Label    string
	Active   bool
}

type pageData struct {
	Filters  []filterButton
	Cards    template.HTML
	Alert    string
	Email    string
	MenuOpen bool
}

func filterButtons(active models.Category) []filterButton {
	buttons := []filterButton{{Category: models.CategoryAll, Label: "All", Active: active == models.CategoryAll}}
	for _, c := range models.Categories {
		buttons = append(buttons, filterButton{Category: c, Label: news.Label(c), Active: active == c})
	}
	return buttons
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>AI News</title>
    <link rel="stylesheet" href="/static/style.css">
</head>
<body>
    <header class="header">
        <nav class="nav">
            <a class="logo" href="#home">AI News</a>
            <ul class="nav-menu{{if .MenuOpen}} active{{end}}">
                <li><a href="#home">Home</a></li>
                <li><a href="#news">News</a></li>
                <li><a href="#subscribe">Subscribe</a></li>
            </ul>
            <a class="nav-toggle{{if .MenuOpen}} active{{end}}" href="?menu={{if .MenuOpen}}closed{{else}}open{{end}}" aria-label="Menu">
                <span></span><span></span><span></span>
            </a>
        </nav>
    </header>
    <main>
        <section id="home" class="hero">
            <h1>The latest in artificial intelligence</h1>
            <p>Research, products and industry moves, collected every hour.</p>
            <a href="#news" class="btn btn-primary">Read the news</a>
        </section>
        <section id="news" class="news">
            <div class="news-filters">{{range .Filters}}
                <a class="filter-btn{{if .Active}} active{{end}}" data-category="{{.Category}}" href="?category={{.Category}}#news">{{.Label}}</a>{{end}}
            </div>
            <div id="newsGrid" class="news-grid">
{{.Cards}}
            </div>
        </section>
        <section id="subscribe" class="subscribe">
            <h2>Get the digest</h2>{{if .Alert}}
            <p class="alert" role="alert">{{.Alert}}</p>{{end}}
            <form id="subscribeForm" action="/subscribe" method="post">
                <input type="email" name="email" placeholder="you@example.com" value="{{.Email}}">
                <button type="submit" class="btn btn-primary">Subscribe</button>
            </form>
        </section>
    </main>
    <footer class="footer"><p>AI News</p></footer>
    <script src="/static/app.js"></script>
</body>
</html>
`))
