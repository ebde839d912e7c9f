// Package pages serves the storefront's static informational pages.
package pages

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content/*.md
var content embed.FS

var ErrNotFound = errors.New("page not found")

type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Library holds every page rendered up front.
type Library struct {
	pages map[string]Page
}

// Load renders all embedded pages.
func Load() (*Library, error) {
	return LoadFS(content, "content")
}

func LoadFS(fsys fs.FS, dir string) (*Library, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Typographer))

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	lib := &Library{pages: make(map[string]Page, len(entries))}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", e.Name(), err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("render page %s: %w", e.Name(), err)
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		lib.pages[slug] = Page{Slug: slug, Title: title(src, slug), HTML: buf.String()}
	}
	return lib, nil
}

func (l *Library) Get(slug string) (Page, error) {
	p, ok := l.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Page{}, fmt.Errorf("%q: %w", slug, ErrNotFound)
	}
	return p, nil
}

func (l *Library) Slugs() []string {
	out := make([]string, 0, len(l.pages))
	for s := range l.pages {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// title is the first level-one heading, or the slug.
func title(src []byte, slug string) string {
	for _, line := range strings.Split(string(src), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return slug
}
