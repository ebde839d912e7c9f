package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
)

// productPageLimit is the platform's maximum page size; the storefront reads one page.
const productPageLimit = 250

// productRecord mirrors the upstream product JSON. Required fields are pointers so
// that missing values can be told apart from zero values.
type productRecord struct {
	ID               *int             `json:"id"`
	Name             *string          `json:"name"`
	Price            *decimal.Decimal `json:"price"`
	SKU              string           `json:"sku"`
	BaseVariantID    int              `json:"base_variant_id"`
	DateCreated      string           `json:"date_created"`
	ReviewsRatingSum float64          `json:"reviews_rating_sum"`
	ReviewsCount     int              `json:"reviews_count"`
	Images           []imageRecord    `json:"images"`
}

type imageRecord struct {
	URLStandard string `json:"url_standard"`
	URLZoom     string `json:"url_zoom"`
	SortOrder   int    `json:"sort_order"`
}

// ListProducts fetches the full catalog. includeImages adds the image sub-resource.
func (c *Client) ListProducts(ctx context.Context, includeImages bool) ([]models.Product, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(productPageLimit))
	if includeImages {
		q.Set("include", "images")
	}

	var resp envelope[[]productRecord]
	if err := c.do(ctx, "list products", http.MethodGet, "/v3/catalog/products", q, nil, &resp); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(resp.Data))
	for i, rec := range resp.Data {
		p, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("list products: record %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProduct fetches one product with its images.
func (c *Client) GetProduct(ctx context.Context, id int) (models.Product, error) {
	q := url.Values{}
	q.Set("include", "images")

	var resp envelope[*productRecord]
	path := "/v3/catalog/products/" + strconv.Itoa(id)
	if err := c.do(ctx, "get product", http.MethodGet, path, q, nil, &resp); err != nil {
		return models.Product{}, err
	}
	if resp.Data == nil {
		return models.Product{}, fmt.Errorf("get product %d: %w: missing data", id, ErrMalformedResponse)
	}
	p, err := resp.Data.toModel()
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r productRecord) toModel() (models.Product, error) {
	var missing []string
	if r.ID == nil || *r.ID <= 0 {
		missing = append(missing, "id")
	}
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return models.Product{}, fmt.Errorf("%w: product missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	images := make([]imageRecord, len(r.Images))
	copy(images, r.Images)
	sort.SliceStable(images, func(i, j int) bool { return images[i].SortOrder < images[j].SortOrder })

	urls := make([]string, 0, len(images))
	for _, img := range images {
		u := img.URLStandard
		if u == "" {
			u = img.URLZoom
		}
		if u != "" {
			urls = append(urls, u)
		}
	}

	var rating float64
	if r.ReviewsCount > 0 {
		rating = r.ReviewsRatingSum / float64(r.ReviewsCount)
	}

	return models.Product{
		ID:            *r.ID,
		Name:          *r.Name,
		Price:         *r.Price,
		Images:        urls,
		SKU:           r.SKU,
		BaseVariantID: r.BaseVariantID,
		Rating:        rating,
		CreatedAt:     parseTime(r.DateCreated),
	}, nil
}

// parseTime accepts the timestamp layouts the platform uses (RFC 3339 on v3,
// RFC 1123 with numeric zone on v2). Unparseable values become the zero time.
func parseTime(v string) time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC1123Z} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
