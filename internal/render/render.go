// Package render turns a built leaderboard page into HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/web"
	"github.com/yuin/goldmark"
)

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Brain-Score Leaderboard"

const templateName = "leaderboard.tmpl"

// Options controls the page chrome around the table.
type Options struct {
	Title string
	// Intro is markdown shown above the table.
	Intro string
}

// Renderer executes the embedded leaderboard template.
type Renderer struct {
	tmpl  *template.Template
	title string
	intro template.HTML
}

type pageContext struct {
	Title      string
	Intro      template.HTML
	Models     []models.ModelRow
	Benchmarks []models.BenchmarkColumn
}

var funcs = template.FuncMap{
	// Cell colors are CSS declarations built from numeric palette values.
	"css": func(s string) template.CSS { return template.CSS(s) },
}

// New parses the embedded template and renders the intro markdown once.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.New(templateName).Funcs(funcs).ParseFS(web.Templates, "templates/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("template: parse: %w", err)
	}

	r := &Renderer{tmpl: tmpl, title: opts.Title}
	if r.title == "" {
		r.title = DefaultTitle
	}
	if opts.Intro != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(opts.Intro), &buf); err != nil {
			return nil, fmt.Errorf("converting intro markdown: %w", err)
		}
		// goldmark drops raw HTML unless built with html.WithUnsafe.
		r.intro = template.HTML(buf.String())
	}
	return r, nil
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, page *models.Page) error {
	ctx := pageContext{
		Title:      r.title,
		Intro:      r.intro,
		Models:     page.Models,
		Benchmarks: page.Benchmarks,
	}
	if err := r.tmpl.ExecuteTemplate(w, templateName, ctx); err != nil {
		return fmt.Errorf("template: render: %w", err)
	}
	return nil
}

// RenderBytes renders the page into memory, so a failed render never leaves
// a partial document behind.
func (r *Renderer) RenderBytes(page *models.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
