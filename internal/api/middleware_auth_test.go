package api

import (
	"net/http"
	"testing"
)

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/user"},
		{http.MethodGet, "/categories/"},
		{http.MethodGet, "/entries/"},
		{http.MethodGet, "/reports/overview"},
		{http.MethodGet, "/lookup/food?q=apfel"},
	}

	for _, route := range protected {
		response, err := app.Test(jsonRequest(t, route.method, route.target, nil, ""), -1)
		if err != nil {
			t.Fatalf("%s %s: request failed: %v", route.method, route.target, err)
		}
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected status 401, got %d", route.method, route.target, response.StatusCode)
		}
		if message := readAPIError(t, response.Body); message != "unauthorized" {
			t.Fatalf("%s %s: expected unauthorized error, got %q", route.method, route.target, message)
		}
		response.Body.Close()
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/user", nil, "not-a-jwt"), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
}

func TestTamperedTokenIsRejected(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	token := registerTestUser(t, app, "anna")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/user", nil, token+"x"), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for tampered token, got %d", response.StatusCode)
	}
}

func TestHealthEndpointIsPublic(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/healthz", nil, ""), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

func TestBearerTokenParsing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Bearer  spaced ", "spaced"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, testCase := range cases {
		if got := bearerToken(testCase.header); got != testCase.expected {
			t.Fatalf("bearerToken(%q): expected %q, got %q", testCase.header, testCase.expected, got)
		}
	}
}
