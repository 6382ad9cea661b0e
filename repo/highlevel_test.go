package repo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"LeadBot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

func newHighLevelServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*HighLevelClient, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		requests = append(requests, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewHighLevelClient("secret", srv.URL, 5*time.Second), &requests
}

func TestHighLevel_LookupFound(t *testing.T) {
	client, requests := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"contacts":[{"id":"abc","email":"j@acme.com"}]}`))
	})

	contact, err := client.LookupByEmail(context.Background(), "j+1@acme.com")

	require.NoError(t, err)
	assert.Equal(t, &model.CRMContact{ID: "abc", Email: "j@acme.com"}, contact)
	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/contacts/lookup", req.Path)
	assert.Equal(t, "email=j%2B1%40acme.com", req.Query)
	assert.Equal(t, "Bearer secret", req.Auth)
}

func TestHighLevel_LookupNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnprocessableEntity} {
		client, _ := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := client.LookupByEmail(context.Background(), "nobody@acme.com")
		assert.ErrorIs(t, err, model.ErrContactNotFound, "status %d", status)
	}

	client, _ := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"contacts":[]}`))
	})
	_, err := client.LookupByEmail(context.Background(), "nobody@acme.com")
	assert.ErrorIs(t, err, model.ErrContactNotFound)
}

func TestHighLevel_ServerError(t *testing.T) {
	client, _ := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.LookupByEmail(context.Background(), "j@acme.com")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "boom", se.Body)
	assert.False(t, errors.Is(err, model.ErrContactNotFound))
}

func TestHighLevel_CreateContact(t *testing.T) {
	client, requests := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"contact":{"id":"new-1"}}`))
	})

	id, err := client.CreateContact(context.Background(), model.ContactFields{
		LocationID: "loc", FirstName: "Jane", LastName: "Doe", Email: "j@acme.com", Source: "Telegram Bot",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-1", id)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/contacts/", req.Path)
	assert.Equal(t, "loc", req.Body["locationId"])
	assert.Equal(t, "Jane", req.Body["firstName"])
	assert.Equal(t, "Telegram Bot", req.Body["source"])
}

func TestHighLevel_CreateContactFlatID(t *testing.T) {
	client, _ := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"flat-1"}`))
	})
	id, err := client.CreateContact(context.Background(), model.ContactFields{Email: "j@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, "flat-1", id)
}

func TestHighLevel_UpdateTagAndNote(t *testing.T) {
	client, requests := newHighLevelServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	require.NoError(t, client.UpdateContact(ctx, "c1", model.ContactFields{Phone: "555"}))
	require.NoError(t, client.TagContact(ctx, "c1", []string{"telegram lead"}))
	require.NoError(t, client.AddNote(ctx, "c1", "hello"))

	require.Len(t, *requests, 3)
	assert.Equal(t, http.MethodPut, (*requests)[0].Method)
	assert.Equal(t, "/contacts/c1", (*requests)[0].Path)
	assert.Equal(t, "555", (*requests)[0].Body["phone"])
	assert.Equal(t, "/contacts/c1/tags", (*requests)[1].Path)
	assert.Equal(t, []any{"telegram lead"}, (*requests)[1].Body["tags"])
	assert.Equal(t, "/contacts/c1/notes", (*requests)[2].Path)
	assert.Equal(t, "hello", (*requests)[2].Body["body"])
}
