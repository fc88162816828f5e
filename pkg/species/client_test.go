package species

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_DecodesCollection(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "nome": "Ipê", "descricao": "Árvore nativa"},
			{"id": 2, "nome": "Jatobá", "descricao": null}
		]`))
	}))
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/api/especies")
	items, err := client.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/especies", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, []Species{
		{ID: 1, Name: "Ipê", Description: "Árvore nativa"},
		{ID: 2, Name: "Jatobá", Description: ""},
	}, items)
}

func TestList_EmptyArrayIsNotAnError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	items, err := NewHTTPClient(ts.URL).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestList_MalformedBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"especies": []}`},
		{"missing id", `[{"nome": "Ipê"}]`},
		{"string id", `[{"id": "1", "nome": "Ipê"}]`},
		{"numeric name", `[{"id": 1, "nome": 42}]`},
		{"null body", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewHTTPClient(ts.URL).List(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
			assert.False(t, IsConnectionError(err))
		})
	}
}

func TestCreate_PostsPayload(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9, "nome": "Ipê", "descricao": ""}`))
	}))
	defer ts.Close()

	err := NewHTTPClient(ts.URL+"/api/especies/").Create(context.Background(), Payload{Name: "Ipê", Description: "Amarelo"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/especies", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]interface{}{"nome": "Ipê", "descricao": "Amarelo"}, gotBody)
}

func TestUpdate_PutsToItemURL(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := NewHTTPClient(ts.URL+"/api/especies").Update(context.Background(), 7, Payload{Name: "Ipê-Amarelo"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/especies/7", gotPath)
	assert.Equal(t, map[string]interface{}{"nome": "Ipê-Amarelo", "descricao": ""}, gotBody)
	assert.NotContains(t, gotBody, "id")
}

func TestDelete_SendsDelete(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	err := NewHTTPClient(ts.URL+"/api/especies").Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/especies/3", gotPath)
}

func TestNonSuccessStatus_IsAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "json error body",
			status:      http.StatusNotFound,
			body:        `{"error": "not_found", "message": "species not found: 3"}`,
			wantCode:    "not_found",
			wantMessage: "species not found: 3",
		},
		{
			name:        "plain body",
			status:      http.StatusInternalServerError,
			body:        "boom",
			wantCode:    ErrCodeUnknown,
			wantMessage: "server returned status 500: boom",
		},
		{
			name:        "not modified is not success",
			status:      http.StatusNotModified,
			body:        "",
			wantCode:    ErrCodeUnknown,
			wantMessage: "server returned status 304: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			err := NewHTTPClient(ts.URL).Delete(context.Background(), 3)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.NotEmpty(t, apiErr.RequestID)
			assert.False(t, IsConnectionError(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestConnectionError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := NewHTTPClient(url + "/api/especies")

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.Equal(t, 0, StatusCode(err))

	err = client.Create(context.Background(), Payload{Name: "Ipê"})
	assert.True(t, IsConnectionError(err))
}

func TestCancelledRequest_IsConnectionError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPClient(ts.URL).Delete(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.ErrorIs(t, err, context.Canceled)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrCodeConnection, apiErr.ErrorCode)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestIsConnectionError_ContextErrors(t *testing.T) {
	assert.True(t, IsConnectionError(context.Canceled))
	assert.True(t, IsConnectionError(fmt.Errorf("save: %w", context.DeadlineExceeded)))
	assert.False(t, IsConnectionError(errors.New("boom")))
	assert.False(t, IsConnectionError(&APIError{StatusCode: 500, ErrorCode: ErrCodeUnknown}))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	var calls int
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		assert.Equal(t, "http://species.test/api/especies", r.URL.String())
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`[{"id": 3, "nome": "Pau-brasil"}]`)),
			Request:    r,
		}, nil
	})

	client := NewHTTPClient("http://species.test/api/especies/",
		WithHTTPClient(&http.Client{Transport: transport}))
	items, err := client.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []Species{{ID: 3, Name: "Pau-brasil"}}, items)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL, WithHeader("Authorization", "Bearer abc")).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("ParseID(%q) error = %v, want ErrInvalidID", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseID(%q) = %d, %v, want %d", tt.in, got, err, tt.want)
			}
		})
	}
}
