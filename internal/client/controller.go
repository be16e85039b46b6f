package client

import (
	"errors"
	"strings"
	"sync"
)

// View names one screen of the client. The controller tracks which is
// active and what context it carries.
type View string

const (
	ViewLogin          View = "login"
	ViewHomepage       View = "homepage"
	ViewCategory       View = "category"
	ViewCreateCategory View = "create_category"
	ViewReporting      View = "reporting"
	ViewSettings       View = "settings"
)

// ErrSaveInFlight rejects a second submission while the first one is
// still round-tripping. Double-clicks must not create duplicate entries.
var ErrSaveInFlight = errors.New("a save is already in progress")

// Controller is the client view state machine. A selected category and an
// entry being edited only make sense on the category view, so every
// transition away clears them.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	session SessionStore

	view               View
	selectedCategoryID uint
	editingEntryID     uint
	saving             bool
	profile            Profile
	draftFields        []CategoryFieldPayload
}

func NewController(store *Store, session SessionStore) *Controller {
	return &Controller{
		store:   store,
		session: session,
		view:    ViewLogin,
	}
}

func (controller *Controller) View() View {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.view
}

func (controller *Controller) SelectedCategoryID() uint {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.selectedCategoryID
}

func (controller *Controller) EditingEntryID() uint {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.editingEntryID
}

// SelectedCategory re-resolves the selection against the current store
// snapshot. After a refresh the cached structs are stale, only the id
// survives.
func (controller *Controller) SelectedCategory() (Category, bool) {
	controller.mu.Lock()
	id := controller.selectedCategoryID
	controller.mu.Unlock()
	if id == 0 {
		return Category{}, false
	}
	return controller.store.CategoryByID(id)
}

// Show switches the active view. Moving anywhere but the category view
// drops the category selection and leaves entry edit mode; entering the
// creation view starts the field builder over with one empty row.
func (controller *Controller) Show(view View) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.view = view
	if view != ViewCategory {
		controller.selectedCategoryID = 0
		controller.editingEntryID = 0
	}
	if view == ViewCreateCategory {
		controller.draftFields = []CategoryFieldPayload{{}}
	}
}

// OpenCategory shows the category view for the given id.
func (controller *Controller) OpenCategory(categoryID uint) error {
	if _, found := controller.store.CategoryByID(categoryID); !found {
		return errors.New("category not found")
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.view = ViewCategory
	controller.selectedCategoryID = categoryID
	controller.editingEntryID = 0
	return nil
}

// EditEntry puts the category view into edit mode for one entry.
func (controller *Controller) EditEntry(entryID uint) error {
	entry, found := controller.store.EntryByID(entryID)
	if !found {
		return errors.New("entry not found")
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.view = ViewCategory
	controller.selectedCategoryID = entry.CategoryID
	controller.editingEntryID = entryID
	return nil
}

// DraftFields returns the field-builder rows of the creation view.
func (controller *Controller) DraftFields() []CategoryFieldPayload {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return append([]CategoryFieldPayload(nil), controller.draftFields...)
}

// AddDraftField appends one empty builder row.
func (controller *Controller) AddDraftField() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.draftFields = append(controller.draftFields, CategoryFieldPayload{})
}

// SetDraftField replaces one builder row in place.
func (controller *Controller) SetDraftField(index int, field CategoryFieldPayload) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if index < 0 || index >= len(controller.draftFields) {
		return errors.New("no such field row")
	}
	controller.draftFields[index] = field
	return nil
}

// CreateCategory submits the builder state. Rows without a label are
// dropped the way the creation form ignores empty builder rows; at least
// one usable row is required before any network call happens.
func (controller *Controller) CreateCategory(name, description string) error {
	controller.mu.Lock()
	fields := make([]CategoryFieldPayload, 0, len(controller.draftFields))
	for _, field := range controller.draftFields {
		field.Label = strings.TrimSpace(field.Label)
		if field.Label == "" {
			continue
		}
		fields = append(fields, field)
	}
	controller.mu.Unlock()

	if len(fields) == 0 {
		return errors.New("category needs at least one field")
	}

	err := controller.store.CreateCategory(CategoryPayload{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Fields:      fields,
	})
	if err != nil {
		return controller.handleAuthError(err)
	}
	controller.Show(ViewHomepage)
	return nil
}

// OpenSettings fetches the current profile and shows the settings view.
func (controller *Controller) OpenSettings() error {
	profile, err := controller.store.client.Profile()
	if err != nil {
		return controller.handleAuthError(err)
	}
	controller.mu.Lock()
	controller.profile = profile
	controller.mu.Unlock()
	controller.Show(ViewSettings)
	return nil
}

// Profile returns the account loaded by the last OpenSettings call.
func (controller *Controller) Profile() Profile {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.profile
}

func (controller *Controller) CancelEdit() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.editingEntryID = 0
}

// SaveEntry creates or updates depending on edit mode, guarded against
// concurrent submissions of the same form.
func (controller *Controller) SaveEntry(payload EntryPayload) error {
	controller.mu.Lock()
	if controller.saving {
		controller.mu.Unlock()
		return ErrSaveInFlight
	}
	controller.saving = true
	editingID := controller.editingEntryID
	controller.mu.Unlock()

	var err error
	if editingID != 0 {
		err = controller.store.UpdateEntry(editingID, payload)
	} else {
		err = controller.store.CreateEntry(payload)
	}

	controller.mu.Lock()
	controller.saving = false
	if err == nil {
		controller.editingEntryID = 0
	}
	controller.mu.Unlock()

	return controller.handleAuthError(err)
}

func (controller *Controller) DeleteEntry(entryID uint) error {
	return controller.handleAuthError(controller.store.DeleteEntry(entryID))
}

// Login authenticates, persists the session and lands on the homepage.
func (controller *Controller) Login(name, password string) error {
	result, err := controller.store.client.Login(name, password)
	if err != nil {
		return err
	}
	if controller.session != nil {
		if err := controller.session.Save(Session{Token: result.Token, Name: result.Name}); err != nil {
			return err
		}
	}
	if err := controller.store.Refresh(); err != nil {
		return controller.handleAuthError(err)
	}
	controller.Show(ViewHomepage)
	return nil
}

// Resume restores a persisted session. A rejected token falls back to the
// login view with the stale session cleared.
func (controller *Controller) Resume() error {
	if controller.session == nil {
		return nil
	}
	session, found, err := controller.session.Load()
	if err != nil || !found {
		return err
	}
	controller.store.client.SetToken(session.Token)
	if err := controller.store.Refresh(); err != nil {
		return controller.handleAuthError(err)
	}
	controller.Show(ViewHomepage)
	return nil
}

// Logout clears the persisted session and returns to login.
func (controller *Controller) Logout() error {
	controller.store.client.SetToken("")
	controller.Show(ViewLogin)
	if controller.session != nil {
		return controller.session.Clear()
	}
	return nil
}

// Refresh reloads the store, dropping to login on a rejected token. A
// selection pointing at a category that vanished from the new snapshot
// falls back to the homepage.
func (controller *Controller) Refresh() error {
	if err := controller.store.Refresh(); err != nil {
		return controller.handleAuthError(err)
	}

	controller.mu.Lock()
	id := controller.selectedCategoryID
	controller.mu.Unlock()
	if id != 0 {
		if _, found := controller.store.CategoryByID(id); !found {
			controller.Show(ViewHomepage)
		}
	}
	return nil
}

// handleAuthError downgrades to the login view when the server rejects
// the token. Every other error passes through untouched.
func (controller *Controller) handleAuthError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) {
		controller.store.client.SetToken("")
		if controller.session != nil {
			_ = controller.session.Clear()
		}
		controller.Show(ViewLogin)
	}
	return err
}
