package catalog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func p(id int, name string) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.NewFromInt(10)}
}

func sampleCatalog() []models.Product {
	return []models.Product{
		p(12, "Traditional Beef Biltong 500g"),
		p(13, "Chilli BILTONG Slices"),
		p(20, "Droewors 250g"),
		p(21, "Spicy Stokkies"),
		p(30, "Frozen Boerewors Coil"),
		p(40, "Mrs Balls Chutney"),
		p(41, "Ouma Rusks"),
		p(741, "Chilli Bites Original"),
		p(742, "Chilli Bites Peri-Peri"),
		p(743, "Chilli Bites Inferno"),
	}
}

func ids(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestResolveExplicitIDs(t *testing.T) {
	r := DefaultResolver()

	got, cat, err := r.Resolve("chilli-bites/inferno", sampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, []int{743}, ids(got))
	assert.Equal(t, models.CategoryExplicit, cat.Kind)
	assert.Equal(t, "Inferno Chilli Bites", cat.Title)

	got, _, err = r.Resolve("/Chilli-Bites/Inferno/", sampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, []int{743}, ids(got))
}

func TestResolveUnknownPath(t *testing.T) {
	r := DefaultResolver()

	got, cat, err := r.Resolve("not-a-real-category", sampleCatalog())
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, cat.Path)
}

func TestResolveKeywordIsCaseInsensitiveSubstring(t *testing.T) {
	r := DefaultResolver()

	got, cat, err := r.Resolve("biltong", sampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryKeyword, cat.Kind)
	assert.Equal(t, []int{12, 13}, ids(got))
}

func TestResolveKeywordMatchesExactlyTheKeywordSet(t *testing.T) {
	r := DefaultResolver()
	products := sampleCatalog()

	got, cat, err := r.Resolve("dried-meats", products)
	require.NoError(t, err)

	var want []int
	for _, p := range products {
		name := strings.ToLower(p.Name)
		for _, kw := range cat.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				want = append(want, p.ID)
				break
			}
		}
	}
	assert.Equal(t, want, ids(got))
	assert.Equal(t, []int{12, 13, 20, 21, 741, 742, 743}, ids(got))
}

func TestGroceriesIsExclusionBased(t *testing.T) {
	r := DefaultResolver()

	got, cat, err := r.Resolve("groceries", sampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCatchAll, cat.Kind)
	assert.Equal(t, []int{40, 41}, ids(got))

	// anything unknown lands in groceries, even with no keyword of its own
	got, _, _ = r.Resolve("groceries", []models.Product{p(99, "Something New")})
	assert.Equal(t, []int{99}, ids(got))
}

func TestGroceriesExcludesEveryMeatWord(t *testing.T) {
	r := DefaultResolver()
	// both historical groceries filters, plus the words added on top of them
	words := []string{"biltong", "drywors", "stokkies", "beef sticks", "boerewors", "droewors", "chilli bites", "sausage"}

	products := make([]models.Product, 0, len(words))
	for i, w := range words {
		products = append(products, p(500+i, "Farm "+strings.ToUpper(w[:1])+w[1:]+" Pack"))
	}
	got, _, err := r.Resolve("groceries", products)
	require.NoError(t, err)
	assert.Empty(t, ids(got))
}

func TestClassifyPrecedence(t *testing.T) {
	r := DefaultResolver()

	cases := []struct {
		product models.Product
		want    string
	}{
		{p(743, "Chilli Bites Inferno"), "chilli-bites/inferno"},
		{p(801, "Biltong Gift Box"), "gift-boxes"},
		{p(12, "Traditional Beef Biltong"), "biltong"},
		{p(20, "Droewors 250g"), "droewors"},
		{p(21, "Spicy Stokkies"), "dried-meats"},
		{p(30, "Boerewors Coil"), "sausage"},
		{p(40, "Mrs Balls Chutney"), "groceries"},
	}
	for _, tc := range cases {
		cat, ok := r.Classify(tc.product)
		require.True(t, ok, tc.product.Name)
		assert.Equal(t, tc.want, cat.Path, tc.product.Name)
	}
}

func TestNewResolverRejectsBadMappings(t *testing.T) {
	cases := map[string]string{
		"two strategies": `
categories:
  - path: x
    product_ids: [1]
    keywords: [a]`,
		"no strategy": `
categories:
  - path: x
    title: X`,
		"unknown set": `
categories:
  - path: x
    keyword_set: nope`,
		"unknown exclude set": `
categories:
  - path: x
    exclude_sets: [nope]`,
		"duplicate path": `
categories:
  - path: x
    keywords: [a]
  - path: /x/
    keywords: [b]`,
		"bad yaml": `categories: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewResolver([]byte(doc))
			assert.Error(t, err)
		})
	}
}

type fakeFetcher struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeFetcher) ListProducts(_ context.Context, includeImages bool) ([]models.Product, error) {
	f.calls++
	return f.products, f.err
}

func (f *fakeFetcher) GetProduct(_ context.Context, id int) (models.Product, error) {
	f.calls++
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errors.New("not found")
}

func TestServiceFetchesEveryTime(t *testing.T) {
	f := &fakeFetcher{products: sampleCatalog()}
	svc := NewService(f, DefaultResolver())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, _, err := svc.ProductsInCategory(ctx, "chilli-bites/inferno")
		require.NoError(t, err)
		assert.Equal(t, []int{743}, ids(got))
	}
	assert.Equal(t, 3, f.calls)

	_, _, err := svc.ProductsInCategory(ctx, "not-a-real-category")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Equal(t, 3, f.calls)
}

func TestServicePropagatesFetchErrors(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewService(&fakeFetcher{err: boom}, DefaultResolver())

	got, _, err := svc.ProductsInCategory(context.Background(), "biltong")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	products := sampleCatalog()[:2]
	products[0].Images = []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}

	require.NoError(t, ExportXLSX(&buf, products, DefaultResolver()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0].Cells[1].String())
	assert.Equal(t, "Traditional Beef Biltong 500g", rows[1].Cells[1].String())
	assert.Equal(t, "10.00", rows[1].Cells[2].String())
	assert.Equal(t, "Biltong", rows[1].Cells[4].String())
	assert.Equal(t, "https://cdn/a.jpg,https://cdn/b.jpg", rows[1].Cells[6].String())
}
