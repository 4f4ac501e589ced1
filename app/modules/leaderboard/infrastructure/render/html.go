package render

import (
	"html/template"
	"io"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

// ResultsElementID is the id of the element the table is placed in.
const ResultsElementID = "results"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="{{.ElementID}}">
{{template "table" .Table}}
</div>
{{if not .GeneratedAt.IsZero}}<p><small>Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</small></p>{{end}}
</body>
</html>
`))

func init() {
	template.Must(pageTemplate.New("table").Parse(`<table>
  <thead>
    <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
  </tbody>
</table>`))
}

// Page is the data behind a rendered HTML page.
type Page struct {
	Title       string
	ElementID   string
	GeneratedAt time.Time
	Table       Table
}

// WriteHTML renders a standalone page holding the leaderboard table.
// Team names are escaped.
func WriteHTML(w io.Writer, title string, generatedAt time.Time, variant leaderboarddomain.Variant, labels []string, standings []leaderboarddomain.Standing) error {
	return pageTemplate.Execute(w, Page{
		Title:       title,
		ElementID:   ResultsElementID,
		GeneratedAt: generatedAt,
		Table:       BuildTable(variant, labels, standings),
	})
}

// WriteHTMLTable renders only the <table> element.
func WriteHTMLTable(w io.Writer, variant leaderboarddomain.Variant, labels []string, standings []leaderboarddomain.Standing) error {
	return pageTemplate.ExecuteTemplate(w, "table", BuildTable(variant, labels, standings))
}
