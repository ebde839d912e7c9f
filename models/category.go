package models

// CategoryKind tells how a category selects products.
type CategoryKind string

const (
	CategoryExplicit CategoryKind = "explicit" // fixed product id list
	CategoryKeyword  CategoryKind = "keyword"  // name keyword match
	CategoryCatchAll CategoryKind = "catch_all"
)

type Category struct {
	Path       string       `json:"path" yaml:"path"`
	Title      string       `json:"title" yaml:"title"`
	Kind       CategoryKind `json:"kind" yaml:"-"`
	ProductIDs []int        `json:"product_ids,omitempty" yaml:"product_ids"`
	Keywords   []string     `json:"keywords,omitempty" yaml:"keywords"`
	KeywordSet string       `json:"-" yaml:"keyword_set"`
	Exclude    []string     `json:"-" yaml:"exclude_sets"`
}
