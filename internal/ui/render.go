package ui

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed assets/page.html assets/app.js
var assets embed.FS

var page = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"css": func(s Style) template.CSS { return template.CSS(s.CSS()) },
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"has": func(vs []string, v string) bool {
		for _, x := range vs {
			if x == v {
				return true
			}
		}
		return false
	},
}).ParseFS(assets, "assets/page.html"))

// Page is everything the HTML page needs.
type Page struct {
	Title    string
	Root     Node
	Listings int
}

// Footer is the dataset size line, with thousands separators.
func (p Page) Footer() string {
	return message.NewPrinter(language.English).Sprintf("%d listings loaded", p.Listings)
}

// Render writes the full HTML document.
func Render(w io.Writer, p Page) error {
	return page.Execute(w, p)
}

// Assets serves the static files referenced by the page under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
