package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client consumes the external product catalog API. Failures never escape
// as errors; they are folded into the uniform success/message/data result
// so the UI boundary has a single shape to render.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Product is the local projection of a remote catalog record.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type Category struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type ProductsResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *ProductPage `json:"data"`
}

type CategoriesResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []Category `json:"data"`
}

type remoteProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Images      []string    `json:"images"`
	Description string      `json:"description"`
}

type remotePage struct {
	Products []remoteProduct `json:"products"`
	Total    int             `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Products fetches the remote list, reshaped to the local projection.
// Category "all" (or empty) means the unfiltered list.
func (c *Client) Products(ctx context.Context, category string) ProductsResult {
	endpoint := "/products"
	if category != "" && category != "all" {
		endpoint = "/products/category/" + category
	}

	var page remotePage
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return ProductsResult{Success: false, Message: failureMessage(err), Data: nil}
	}

	products := make([]Product, 0, len(page.Products))
	for _, p := range page.Products {
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		products = append(products, Product{
			ID:          p.ID.String(),
			Title:       p.Title,
			Image:       image,
			Description: p.Description,
		})
	}

	return ProductsResult{
		Success: true,
		Message: "Products fetched successfully",
		Data: &ProductPage{
			Products: products,
			Total:    page.Total,
			Skip:     page.Skip,
			Limit:    page.Limit,
		},
	}
}

// Categories fetches the category slugs and formats them for display, with
// the synthetic All entry always first. On failure Data is empty, never nil.
func (c *Client) Categories(ctx context.Context) CategoriesResult {
	var slugs []string
	if err := c.getJSON(ctx, "/products/category-list", &slugs); err != nil {
		return CategoriesResult{Success: false, Message: failureMessage(err), Data: []Category{}}
	}

	categories := make([]Category, 0, len(slugs)+1)
	categories = append(categories, Category{Text: "All", Link: "all"})
	for _, slug := range slugs {
		categories = append(categories, Category{Text: FormatCategoryLabel(slug), Link: slug})
	}

	return CategoriesResult{
		Success: true,
		Message: "Category list fetched successfully",
		Data:    categories,
	}
}

// FormatCategoryLabel turns a category slug into display text: hyphens
// become spaces and each word is capitalized, with the mens-/womens-
// prefixes expanded to possessives and the rest reformatted recursively.
func FormatCategoryLabel(category string) string {
	if rest, ok := strings.CutPrefix(category, "mens-"); ok {
		return "Men's " + FormatCategoryLabel(rest)
	}
	if rest, ok := strings.CutPrefix(category, "womens-"); ok {
		return "Women's " + FormatCategoryLabel(rest)
	}

	words := strings.Split(category, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func failureMessage(err error) string {
	if strings.HasPrefix(err.Error(), "server error:") {
		return "Server error: " + strings.TrimPrefix(err.Error(), "server error: ")
	}
	return "An unexpected error occurred"
}
