package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lifetrack/internal/models"
)

// ErrUnauthorized reports a rejected or expired token. Callers drop the
// session and return to login when they see it.
var ErrUnauthorized = errors.New("unauthorized")

type (
	// Category mirrors the server payload for a category with its fields.
	Category struct {
		ID              uint            `json:"id"`
		Name            string          `json:"name"`
		Description     string          `json:"description"`
		IsSystemDefault bool            `json:"is_system_default"`
		Fields          []CategoryField `json:"fields"`
	}

	CategoryField struct {
		Label    string `json:"label"`
		DataType string `json:"data_type"`
		Unit     string `json:"unit"`
	}

	Entry struct {
		ID         uint           `json:"id"`
		CategoryID uint           `json:"category_id"`
		OccurredAt time.Time      `json:"occurred_at"`
		Note       string         `json:"note"`
		Data       map[string]any `json:"data"`
	}

	// EntryPayload is the write shape for create and update calls.
	EntryPayload struct {
		CategoryID uint           `json:"category_id"`
		OccurredAt string         `json:"occurred_at"`
		Note       string         `json:"note"`
		Values     map[string]any `json:"values"`
	}

	CategoryPayload struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Fields      []CategoryFieldPayload `json:"fields"`
	}

	CategoryFieldPayload struct {
		Label    string `json:"label"`
		DataType string `json:"data_type"`
		Unit     string `json:"unit"`
	}

	LoginResult struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Message string `json:"message"`
		Name    string `json:"name"`
	}

	// Profile is the account shape behind the settings view.
	Profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// ProfilePayload patches the account. Empty fields stay untouched.
	ProfilePayload struct {
		Name     string `json:"name,omitempty"`
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
	}

	FormControl struct {
		Label        string `json:"label"`
		InputType    string `json:"input_type"`
		DisplayLabel string `json:"display_label"`
		Placeholder  string `json:"placeholder"`
		Unit         string `json:"unit"`
	}

	apiErrorBody struct {
		Error string `json:"error"`
	}
)

// Client is a typed HTTP client for the tracking API. The token is set
// after login and sent as a bearer header on every authenticated call.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) { c.token = token }
func (c *Client) Token() string         { return c.token }

func (c *Client) Register(name, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(http.MethodPost, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return LoginResult{}, err
	}
	c.token = result.Token
	return result, nil
}

func (c *Client) VerifyEmail(email, code string) error {
	return c.do(http.MethodPost, "/verify", map[string]string{
		"email": email,
		"code":  code,
	}, nil)
}

func (c *Client) Login(name, password string) (LoginResult, error) {
	var result LoginResult
	err := c.do(http.MethodPost, "/login", map[string]string{
		"name":     name,
		"password": password,
	}, &result)
	if err != nil {
		return LoginResult{}, err
	}
	c.token = result.Token
	return result, nil
}

func (c *Client) Profile() (Profile, error) {
	var profile Profile
	if err := c.do(http.MethodGet, "/user", nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) UpdateProfile(payload ProfilePayload) (Profile, error) {
	var profile Profile
	if err := c.do(http.MethodPut, "/user", payload, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) DeleteAccount() error {
	return c.do(http.MethodDelete, "/user", nil, nil)
}

func (c *Client) Categories() ([]Category, error) {
	var categories []Category
	if err := c.do(http.MethodGet, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(payload CategoryPayload) (Category, error) {
	var category Category
	if err := c.do(http.MethodPost, "/categories/", payload, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (c *Client) UpdateCategory(id uint, payload CategoryPayload) (Category, error) {
	var category Category
	if err := c.do(http.MethodPut, fmt.Sprintf("/categories/%d", id), payload, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (c *Client) DeleteCategory(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

func (c *Client) CategoryForm(id uint) ([]FormControl, error) {
	var response struct {
		Controls []FormControl `json:"controls"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/categories/%d/form", id), nil, &response); err != nil {
		return nil, err
	}
	return response.Controls, nil
}

// EntryFilter narrows the entry listing. Zero values mean no filter.
type EntryFilter struct {
	CategoryID uint
	Start      string
	End        string
}

func (c *Client) Entries(filter EntryFilter) ([]Entry, error) {
	query := url.Values{}
	if filter.CategoryID != 0 {
		query.Set("category_id", strconv.FormatUint(uint64(filter.CategoryID), 10))
	}
	if filter.Start != "" {
		query.Set("start", filter.Start)
	}
	if filter.End != "" {
		query.Set("end", filter.End)
	}

	path := "/entries/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var entries []Entry
	if err := c.do(http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) CreateEntry(payload EntryPayload) (Entry, error) {
	var entry Entry
	if err := c.do(http.MethodPost, "/entries/", payload, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (c *Client) UpdateEntry(id uint, payload EntryPayload) (Entry, error) {
	var entry Entry
	if err := c.do(http.MethodPut, fmt.Sprintf("/entries/%d", id), payload, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (c *Client) DeleteEntry(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/entries/%d", id), nil, nil)
}

func (c *Client) LookupFood(query string, weightGrams float64) (name string, kcal float64, found bool, err error) {
	values := url.Values{}
	values.Set("q", query)
	if weightGrams > 0 {
		values.Set("weight", strconv.FormatFloat(weightGrams, 'f', -1, 64))
	}

	var response struct {
		Found       bool    `json:"found"`
		Name        string  `json:"name"`
		KcalPer100g float64 `json:"kcal_per_100g"`
		Kcal        float64 `json:"kcal"`
	}
	if err := c.do(http.MethodGet, "/lookup/food?"+values.Encode(), nil, &response); err != nil {
		return "", 0, false, err
	}
	if !response.Found {
		return "", 0, false, nil
	}
	kcal = response.Kcal
	if kcal == 0 {
		kcal = response.KcalPer100g
	}
	return response.Name, kcal, true, nil
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if response.StatusCode >= 400 {
		var apiErr apiErrorBody
		if err := json.NewDecoder(response.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, response.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ToModel converts an API entry to the shared model shape used by the
// reporting helpers.
func (entry Entry) ToModel() models.Entry {
	return models.Entry{
		ID:         entry.ID,
		CategoryID: entry.CategoryID,
		OccurredAt: entry.OccurredAt,
		Note:       entry.Note,
		Data:       entry.Data,
	}
}

// ToModel converts an API category for use with the reporting helpers.
func (category Category) ToModel() models.Category {
	fields := make([]models.CategoryField, 0, len(category.Fields))
	for position, field := range category.Fields {
		fields = append(fields, models.CategoryField{
			Position: position,
			Label:    field.Label,
			DataType: field.DataType,
			Unit:     field.Unit,
		})
	}
	return models.Category{
		ID:              category.ID,
		Name:            category.Name,
		Description:     category.Description,
		IsSystemDefault: category.IsSystemDefault,
		Fields:          fields,
	}
}
