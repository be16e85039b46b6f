package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

// ErrNoProduct reports an empty search result; callers treat it as a
// soft failure, never as an error worth surfacing loudly.
var ErrNoProduct = errors.New("no product found")

// Product is the subset of an OpenFoodFacts result the entry form can
// prefill from. The upstream schema is unreliable, so KcalPer100g may be
// zero when the product carries no energy data.
type Product struct {
	Name        string  `json:"name"`
	KcalPer100g float64 `json:"kcal_per_100g"`
}

// Client queries the OpenFoodFacts search endpoint. Best effort only:
// absent fields are tolerated, a single result is requested.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (client *Client) Search(ctx context.Context, query string) (Product, error) {
	endpoint := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=1",
		client.baseURL,
		url.QueryEscape(query),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Product{}, fmt.Errorf("build lookup request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return Product{}, fmt.Errorf("food lookup request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return Product{}, fmt.Errorf("food lookup status %d", response.StatusCode)
	}

	var payload struct {
		Products []struct {
			ProductName string `json:"product_name"`
			Nutriments  struct {
				EnergyKcal100g float64 `json:"energy-kcal_100g"`
				EnergyKcal     float64 `json:"energy-kcal"`
			} `json:"nutriments"`
		} `json:"products"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return Product{}, fmt.Errorf("decode lookup response: %w", err)
	}
	if len(payload.Products) == 0 {
		return Product{}, ErrNoProduct
	}

	first := payload.Products[0]
	kcal := first.Nutriments.EnergyKcal100g
	if kcal == 0 {
		kcal = first.Nutriments.EnergyKcal
	}

	return Product{
		Name:        first.ProductName,
		KcalPer100g: kcal,
	}, nil
}

// ScaleEnergy converts a per-100g calorie value to the given weight in
// grams, rounded to a whole kcal the way the entry form displays it.
func ScaleEnergy(kcalPer100g float64, weightGrams float64) float64 {
	return math.Round(weightGrams / 100 * kcalPer100g)
}
