package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubBackend is an in-memory stand-in for the tracking API, just enough
// surface for the client tests: bearer auth, categories, entries.
type stubBackend struct {
	mu         sync.Mutex
	token      string
	rejectAll  bool
	categories []Category
	entries    []Entry
	nextID     uint

	// entryCreateGate, when set, blocks entry creation until released;
	// entryCreateStarted signals that a blocked creation arrived.
	entryCreateGate    chan struct{}
	entryCreateStarted chan struct{}
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		token:  "stub-token",
		nextID: 1,
		categories: []Category{
			{ID: 101, Name: "🚴 Fitness", IsSystemDefault: true, Fields: []CategoryField{
				{Label: "Energie", DataType: "number", Unit: "kcal"},
			}},
			{ID: 102, Name: "🍎 Ernährung", IsSystemDefault: true, Fields: []CategoryField{
				{Label: "Energie", DataType: "number", Unit: "kcal"},
			}},
		},
	}
}

func (backend *stubBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return server
}

func (backend *stubBackend) authorized(r *http.Request) bool {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.rejectAll {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+backend.token
}

func (backend *stubBackend) rejectFurtherRequests() {
	backend.mu.Lock()
	backend.rejectAll = true
	backend.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (backend *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && r.URL.Path == "/login" {
		var input struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&input)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   backend.token,
			"name":    input.Name,
		})
		return
	}

	if !backend.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/user":
		writeJSON(w, http.StatusOK, Profile{Name: "anna", Email: "anna@example.com"})

	case r.Method == http.MethodGet && r.URL.Path == "/categories/":
		backend.mu.Lock()
		categories := append([]Category(nil), backend.categories...)
		backend.mu.Unlock()
		writeJSON(w, http.StatusOK, categories)

	case r.Method == http.MethodGet && r.URL.Path == "/entries/":
		backend.mu.Lock()
		entries := append([]Entry(nil), backend.entries...)
		backend.mu.Unlock()
		writeJSON(w, http.StatusOK, entries)

	case r.Method == http.MethodPost && r.URL.Path == "/entries/":
		if backend.entryCreateGate != nil {
			if backend.entryCreateStarted != nil {
				backend.entryCreateStarted <- struct{}{}
			}
			<-backend.entryCreateGate
		}
		var payload EntryPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		backend.mu.Lock()
		entry := Entry{
			ID:         backend.nextID,
			CategoryID: payload.CategoryID,
			OccurredAt: time.Now().UTC(),
			Note:       payload.Note,
			Data:       payload.Values,
		}
		backend.nextID++
		backend.entries = append(backend.entries, entry)
		backend.mu.Unlock()
		writeJSON(w, http.StatusCreated, entry)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/entries/"):
		id := parseStubID(r.URL.Path, "/entries/")
		var payload EntryPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		backend.mu.Lock()
		defer backend.mu.Unlock()
		for index := range backend.entries {
			if backend.entries[index].ID == id {
				backend.entries[index].CategoryID = payload.CategoryID
				backend.entries[index].Note = payload.Note
				backend.entries[index].Data = payload.Values
				writeJSON(w, http.StatusOK, backend.entries[index])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entry not found"})

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/entries/"):
		id := parseStubID(r.URL.Path, "/entries/")
		backend.mu.Lock()
		defer backend.mu.Unlock()
		kept := backend.entries[:0]
		for _, entry := range backend.entries {
			if entry.ID != id {
				kept = append(kept, entry)
			}
		}
		backend.entries = kept
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})

	case r.Method == http.MethodPost && r.URL.Path == "/categories/":
		var payload CategoryPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		backend.mu.Lock()
		category := Category{ID: 200 + backend.nextID, Name: payload.Name, Description: payload.Description}
		for _, field := range payload.Fields {
			category.Fields = append(category.Fields, CategoryField(field))
		}
		backend.nextID++
		backend.categories = append(backend.categories, category)
		backend.mu.Unlock()
		writeJSON(w, http.StatusCreated, category)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/categories/"):
		id := parseStubID(r.URL.Path, "/categories/")
		var payload CategoryPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		backend.mu.Lock()
		defer backend.mu.Unlock()
		for index := range backend.categories {
			if backend.categories[index].ID == id {
				backend.categories[index].Name = payload.Name
				backend.categories[index].Description = payload.Description
				writeJSON(w, http.StatusOK, backend.categories[index])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/categories/"):
		id := parseStubID(r.URL.Path, "/categories/")
		backend.mu.Lock()
		defer backend.mu.Unlock()
		kept := backend.categories[:0]
		for _, category := range backend.categories {
			if category.ID != id {
				kept = append(kept, category)
			}
		}
		backend.categories = kept
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func parseStubID(path string, prefix string) uint {
	raw := strings.TrimPrefix(path, prefix)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

func newTestStack(t *testing.T) (*stubBackend, *Store, *Controller) {
	t.Helper()

	backend := newStubBackend()
	server := backend.serve(t)

	apiClient := New(server.URL)
	store := NewStore(apiClient)
	controller := NewController(store, &MemorySessionStore{})
	return backend, store, controller
}
