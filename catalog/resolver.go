package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultMapping []byte

// ErrCategoryNotFound is returned for a path with no mapping entry.
var ErrCategoryNotFound = errors.New("category not found")

type mappingFile struct {
	KeywordSets map[string][]string `yaml:"keyword_sets"`
	Categories  []models.Category   `yaml:"categories"`
}

type entry struct {
	cat      models.Category
	ids      map[int]struct{}
	keywords []string // lowercased; for a catch-all these are the excluded keywords
}

func (e entry) matches(p models.Product) bool {
	switch e.cat.Kind {
	case models.CategoryExplicit:
		_, ok := e.ids[p.ID]
		return ok
	case models.CategoryKeyword:
		return containsAny(p.Name, e.keywords)
	case models.CategoryCatchAll:
		return !containsAny(p.Name, e.keywords)
	}
	return false
}

// Resolver maps URL paths to product subsets. It is built once from static
// configuration and never changes afterwards.
type Resolver struct {
	entries []entry
	byPath  map[string]int
}

// DefaultResolver uses the mapping compiled into the binary.
func DefaultResolver() *Resolver {
	r, err := NewResolver(defaultMapping)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded category mapping: %v", err))
	}
	return r
}

// NewResolver parses a YAML category mapping.
func NewResolver(data []byte) (*Resolver, error) {
	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse category mapping: %w", err)
	}

	r := &Resolver{byPath: make(map[string]int, len(file.Categories))}
	for _, c := range file.Categories {
		c.Path = normalizePath(c.Path)
		if c.Path == "" {
			return nil, fmt.Errorf("category %q: empty path", c.Title)
		}
		if _, dup := r.byPath[c.Path]; dup {
			return nil, fmt.Errorf("category %q: duplicate path", c.Path)
		}

		e, err := buildEntry(c, file.KeywordSets)
		if err != nil {
			return nil, err
		}
		r.byPath[c.Path] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

func buildEntry(c models.Category, sets map[string][]string) (entry, error) {
	strategies := 0
	if len(c.ProductIDs) > 0 {
		strategies++
	}
	if len(c.Keywords) > 0 || c.KeywordSet != "" {
		strategies++
	}
	if len(c.Exclude) > 0 {
		strategies++
	}
	if strategies != 1 {
		return entry{}, fmt.Errorf("category %q: needs exactly one of product_ids, keywords/keyword_set, exclude_sets", c.Path)
	}

	e := entry{}
	switch {
	case len(c.ProductIDs) > 0:
		c.Kind = models.CategoryExplicit
		e.ids = make(map[int]struct{}, len(c.ProductIDs))
		for _, id := range c.ProductIDs {
			e.ids[id] = struct{}{}
		}
	case len(c.Exclude) > 0:
		c.Kind = models.CategoryCatchAll
		for _, name := range c.Exclude {
			set, ok := sets[name]
			if !ok {
				return entry{}, fmt.Errorf("category %q: unknown keyword set %q", c.Path, name)
			}
			e.keywords = append(e.keywords, lowerAll(set)...)
		}
	default:
		c.Kind = models.CategoryKeyword
		if c.KeywordSet != "" {
			set, ok := sets[c.KeywordSet]
			if !ok {
				return entry{}, fmt.Errorf("category %q: unknown keyword set %q", c.Path, c.KeywordSet)
			}
			c.Keywords = append(append([]string(nil), c.Keywords...), set...)
		}
		e.keywords = lowerAll(c.Keywords)
	}
	e.cat = c
	return e, nil
}

// Resolve returns the products of list that belong to the category at path, in
// list order. An unknown path gives an empty list and ErrCategoryNotFound.
func (r *Resolver) Resolve(path string, list []models.Product) ([]models.Product, models.Category, error) {
	e, ok := r.lookup(path)
	if !ok {
		return []models.Product{}, models.Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, path)
	}
	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if e.matches(p) {
			out = append(out, p)
		}
	}
	return out, e.cat, nil
}

// Category returns the mapping entry for path.
func (r *Resolver) Category(path string) (models.Category, bool) {
	e, ok := r.lookup(path)
	return e.cat, ok
}

// Classify picks the one category a product is shown under: explicit id lists
// first, then keyword categories in file order, and the catch-all last.
func (r *Resolver) Classify(p models.Product) (models.Category, bool) {
	for _, kind := range []models.CategoryKind{models.CategoryExplicit, models.CategoryKeyword, models.CategoryCatchAll} {
		for _, e := range r.entries {
			if e.cat.Kind == kind && e.matches(p) {
				return e.cat, true
			}
		}
	}
	return models.Category{}, false
}

// Categories lists every entry in file order.
func (r *Resolver) Categories() []models.Category {
	out := make([]models.Category, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.cat
	}
	return out
}

func (r *Resolver) lookup(path string) (entry, bool) {
	i, ok := r.byPath[normalizePath(path)]
	if !ok {
		return entry{}, false
	}
	return r.entries[i], true
}

func normalizePath(p string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(p), "/"))
}

// containsAny reports whether name contains any keyword, ignoring case.
// keywords must already be lowercased.
func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
