package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// APIClient sends JSON requests to an http.Handler on behalf of one organization.
type APIClient struct {
	t       *testing.T
	handler http.Handler
	headers map[string]string
}

// NewAPIClient creates a client that identifies as organizationID through the
// X-Organization-ID header.
func NewAPIClient(t *testing.T, handler http.Handler, organizationID uuid.UUID) *APIClient {
	return &APIClient{
		t:       t,
		handler: handler,
		headers: map[string]string{"X-Organization-ID": organizationID.String()},
	}
}

// WithHeader returns a copy of the client that also sends key: value.
func (c *APIClient) WithHeader(key, value string) *APIClient {
	headers := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		headers[k] = v
	}
	headers[key] = value
	return &APIClient{t: c.t, handler: c.handler, headers: headers}
}

// Response is a recorded API response.
type Response struct {
	Code   int
	Header http.Header
	Body   []byte
}

// envelope mirrors the API's success and error wrappers.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Do sends a request. A non-nil body is encoded as JSON.
func (c *APIClient) Do(method, path string, body any) *Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return &Response{Code: w.Code, Header: w.Header(), Body: w.Body.Bytes()}
}

// Get sends a GET request.
func (c *APIClient) Get(path string) *Response {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

// Post sends a POST request with a JSON body.
func (c *APIClient) Post(path string, body any) *Response {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

// Put sends a PUT request with a JSON body.
func (c *APIClient) Put(path string, body any) *Response {
	c.t.Helper()
	return c.Do(http.MethodPut, path, body)
}

// DataAs asserts a successful response with the expected status and decodes its data.
func DataAs[T any](t *testing.T, resp *Response, status int) T {
	t.Helper()

	require.Equal(t, status, resp.Code, "Unexpected status code: %s", resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body, &env), "Failed to parse JSON response")
	require.True(t, env.Success, "Expected success to be true")

	var data T
	require.NoError(t, json.Unmarshal(env.Data, &data), "Failed to decode response data")
	return data
}

// AssertError asserts an error response with the given status and code.
func AssertError(t *testing.T, resp *Response, status int, code string) {
	t.Helper()

	assert.Equal(t, status, resp.Code, "Unexpected status code: %s", resp.Body)
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body, &env), "Failed to parse JSON response")
	assert.False(t, env.Success, "Expected success to be false")
	require.NotNil(t, env.Error, "Expected error object in response")
	assert.Equal(t, code, env.Error.Code, "Unexpected error code")
}
