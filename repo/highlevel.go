package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"LeadBot/model"
)

const DefaultHighLevelURL = "https://rest.gohighlevel.com/v1"

// StatusError is returned for any non-2xx HighLevel response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("highlevel %s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type highLevelContact struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// contactResponse covers both the single and the list shapes HighLevel answers with.
type contactResponse struct {
	ID       string             `json:"id"`
	Contact  *highLevelContact  `json:"contact"`
	Contacts []highLevelContact `json:"contacts"`
}

func (r contactResponse) first() *highLevelContact {
	if r.Contact != nil && r.Contact.ID != "" {
		return r.Contact
	}
	if len(r.Contacts) > 0 {
		return &r.Contacts[0]
	}
	if r.ID != "" {
		return &highLevelContact{ID: r.ID}
	}
	return nil
}

// HighLevelClient talks to the HighLevel contacts REST API.
type HighLevelClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewHighLevelClient(apiKey, baseURL string, timeout time.Duration) *HighLevelClient {
	if baseURL == "" {
		baseURL = DefaultHighLevelURL
	}
	return &HighLevelClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// LookupByEmail returns model.ErrContactNotFound when HighLevel has no contact for email.
func (c *HighLevelClient) LookupByEmail(ctx context.Context, email string) (*model.CRMContact, error) {
	var resp contactResponse
	err := c.do(ctx, http.MethodGet, "/contacts/lookup", url.Values{"email": {email}}, nil, &resp)
	var se *StatusError
	if errors.As(err, &se) && (se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusUnprocessableEntity) {
		return nil, model.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}

	contact := resp.first()
	if contact == nil {
		return nil, model.ErrContactNotFound
	}
	return &model.CRMContact{ID: contact.ID, Email: contact.Email}, nil
}

func (c *HighLevelClient) CreateContact(ctx context.Context, fields model.ContactFields) (string, error) {
	var resp contactResponse
	if err := c.do(ctx, http.MethodPost, "/contacts/", nil, fields, &resp); err != nil {
		return "", err
	}
	contact := resp.first()
	if contact == nil {
		return "", fmt.Errorf("highlevel create contact: response carries no contact id")
	}
	return contact.ID, nil
}

func (c *HighLevelClient) UpdateContact(ctx context.Context, id string, fields model.ContactFields) error {
	return c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(id), nil, fields, nil)
}

func (c *HighLevelClient) TagContact(ctx context.Context, id string, tags []string) error {
	body := map[string][]string{"tags": tags}
	return c.do(ctx, http.MethodPost, "/contacts/"+url.PathEscape(id)+"/tags", nil, body, nil)
}

func (c *HighLevelClient) AddNote(ctx context.Context, id string, text string) error {
	body := map[string]string{"body": text}
	return c.do(ctx, http.MethodPost, "/contacts/"+url.PathEscape(id)+"/notes", nil, body, nil)
}

func (c *HighLevelClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling highlevel: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}
