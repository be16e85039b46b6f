package client

import "sync"

// Store caches the user's categories and entries on the client side. It
// refreshes wholesale: every mutation round-trips to the server and then
// reloads both lists, so the cache never drifts from the backend.
type Store struct {
	mu         sync.RWMutex
	client     *Client
	categories []Category
	entries    []Entry
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Refresh reloads categories and entries from the server. Held references
// into the previous snapshot become stale; look items up again by id.
func (store *Store) Refresh() error {
	categories, err := store.client.Categories()
	if err != nil {
		return err
	}
	entries, err := store.client.Entries(EntryFilter{})
	if err != nil {
		return err
	}

	store.mu.Lock()
	store.categories = categories
	store.entries = entries
	store.mu.Unlock()
	return nil
}

func (store *Store) Categories() []Category {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]Category(nil), store.categories...)
}

func (store *Store) Entries() []Entry {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return append([]Entry(nil), store.entries...)
}

// CategoryByID resolves a category from the current snapshot. Callers keep
// the id across refreshes, never the struct.
func (store *Store) CategoryByID(id uint) (Category, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	for _, category := range store.categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

func (store *Store) EntryByID(id uint) (Entry, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	for _, entry := range store.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// EntriesForCategory filters the snapshot without another round trip.
// The server returns entries newest first, so a positive limit keeps the
// most recent ones; 0 means no limit.
func (store *Store) EntriesForCategory(categoryID uint, limit int) []Entry {
	store.mu.RLock()
	defer store.mu.RUnlock()
	filtered := make([]Entry, 0, len(store.entries))
	for _, entry := range store.entries {
		if entry.CategoryID == categoryID {
			filtered = append(filtered, entry)
		}
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

func (store *Store) CreateEntry(payload EntryPayload) error {
	if _, err := store.client.CreateEntry(payload); err != nil {
		return err
	}
	return store.Refresh()
}

func (store *Store) UpdateEntry(id uint, payload EntryPayload) error {
	if _, err := store.client.UpdateEntry(id, payload); err != nil {
		return err
	}
	return store.Refresh()
}

func (store *Store) DeleteEntry(id uint) error {
	if err := store.client.DeleteEntry(id); err != nil {
		return err
	}
	return store.Refresh()
}

func (store *Store) CreateCategory(payload CategoryPayload) error {
	if _, err := store.client.CreateCategory(payload); err != nil {
		return err
	}
	return store.Refresh()
}

func (store *Store) UpdateCategory(id uint, payload CategoryPayload) error {
	if _, err := store.client.UpdateCategory(id, payload); err != nil {
		return err
	}
	return store.Refresh()
}

func (store *Store) DeleteCategory(id uint) error {
	if err := store.client.DeleteCategory(id); err != nil {
		return err
	}
	return store.Refresh()
}
