package nutrition

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newLookupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second)
}

func TestSearchReturnsFirstProduct(t *testing.T) {
	t.Parallel()

	client := newLookupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "apfel" {
			t.Errorf("unexpected search_terms %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"product_name":"Apfel","nutriments":{"energy-kcal_100g":52}}]}`))
	})

	product, err := client.Search(context.Background(), "apfel")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if product.Name != "Apfel" {
		t.Fatalf("unexpected product name %q", product.Name)
	}
	if product.KcalPer100g != 52 {
		t.Fatalf("unexpected kcal %v", product.KcalPer100g)
	}
}

func TestSearchFallsBackToPlainEnergyField(t *testing.T) {
	t.Parallel()

	client := newLookupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"product_name":"Banane","nutriments":{"energy-kcal":89}}]}`))
	})

	product, err := client.Search(context.Background(), "banane")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if product.KcalPer100g != 89 {
		t.Fatalf("expected fallback energy value, got %v", product.KcalPer100g)
	}
}

func TestSearchReportsNoProductForEmptyResult(t *testing.T) {
	t.Parallel()

	client := newLookupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	_, err := client.Search(context.Background(), "gibtsnicht")
	if !errors.Is(err, ErrNoProduct) {
		t.Fatalf("expected ErrNoProduct, got %v", err)
	}
}

func TestSearchRejectsUpstreamFailure(t *testing.T) {
	t.Parallel()

	client := newLookupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "apfel")
	if err == nil || errors.Is(err, ErrNoProduct) {
		t.Fatalf("expected a hard error for a failing upstream, got %v", err)
	}
}

func TestScaleEnergy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		kcalPer100g float64
		weightGrams float64
		want        float64
	}{
		{name: "double portion", kcalPer100g: 52, weightGrams: 200, want: 104},
		{name: "half portion", kcalPer100g: 52, weightGrams: 50, want: 26},
		{name: "rounds to whole kcal", kcalPer100g: 89, weightGrams: 123, want: 109},
		{name: "zero weight", kcalPer100g: 52, weightGrams: 0, want: 0},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := ScaleEnergy(test.kcalPer100g, test.weightGrams); got != test.want {
				t.Fatalf("ScaleEnergy(%v, %v) = %v, want %v", test.kcalPer100g, test.weightGrams, got, test.want)
			}
		})
	}
}
