package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lifetrack/internal/nutrition"
	"lifetrack/internal/reporting"

	"github.com/gofiber/fiber/v2"
)

func newLookupTestApp(t *testing.T, upstream http.HandlerFunc) (*fiber.App, string) {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	app, _ := newTestAppWithConfig(t, HandlerConfig{
		SecretKey:  "test-secret",
		Location:   time.UTC,
		Vocabulary: reporting.DefaultVocabulary(),
		FoodLookup: nutrition.NewClient(server.URL, time.Second),
	})
	token := registerTestUser(t, app, "anna")
	return app, token
}

func TestLookupFoodReturnsProductAndScaledEnergy(t *testing.T) {
	t.Parallel()

	app, token := newLookupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"product_name":"Apfel","nutriments":{"energy-kcal_100g":52}}]}`))
	})

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/lookup/food?q=apfel&weight=200", nil, token), -1)
	if err != nil {
		t.Fatalf("lookup request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var payload struct {
		Found       bool    `json:"found"`
		Name        string  `json:"name"`
		KcalPer100g float64 `json:"kcal_per_100g"`
		Kcal        float64 `json:"kcal"`
	}
	decodeJSONBody(t, response.Body, &payload)

	if !payload.Found || payload.Name != "Apfel" {
		t.Fatalf("expected product found, got %+v", payload)
	}
	if payload.KcalPer100g != 52 {
		t.Fatalf("expected 52 kcal per 100g, got %v", payload.KcalPer100g)
	}
	if payload.Kcal != 104 {
		t.Fatalf("expected 104 kcal for 200g, got %v", payload.Kcal)
	}
}

func TestLookupFoodMissIsSoftFailure(t *testing.T) {
	t.Parallel()

	app, token := newLookupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/lookup/food?q=gibtsnicht", nil, token), -1)
	if err != nil {
		t.Fatalf("lookup request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 on a miss, got %d", response.StatusCode)
	}

	var payload struct {
		Found bool `json:"found"`
	}
	decodeJSONBody(t, response.Body, &payload)
	if payload.Found {
		t.Fatalf("expected found=false")
	}
}

func TestLookupFoodRequiresQuery(t *testing.T) {
	t.Parallel()

	app, token := newLookupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("upstream must not be called without a query")
	})

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/lookup/food?q=", nil, token), -1)
	if err != nil {
		t.Fatalf("lookup request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestLookupFoodUpstreamErrorIsBadGateway(t *testing.T) {
	t.Parallel()

	app, token := newLookupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/lookup/food?q=apfel", nil, token), -1)
	if err != nil {
		t.Fatalf("lookup request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", response.StatusCode)
	}
}
