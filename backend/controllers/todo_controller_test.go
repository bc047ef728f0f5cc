package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// todoClient carries the session cookie between requests, the way a
// browser would.
type todoClient struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
}

func (tc *todoClient) do(method, target string, payload any) (*http.Response, map[string]any) {
	tc.t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(tc.t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range tc.cookies {
		req.AddCookie(cookie)
	}

	resp, err := tc.app.Test(req)
	require.NoError(tc.t, err)
	if set := resp.Cookies(); len(set) > 0 {
		tc.cookies = set
	}

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(tc.t, err)
	if len(raw) > 0 {
		require.NoError(tc.t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestTodoEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	client := &todoClient{t: t, app: app}

	resp, body := client.do("GET", "/api/todos/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, data(t, body)["tasks"])

	resp, _ = client.do("POST", "/api/todos/", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = client.do("POST", "/api/todos/", map[string]string{
		"text": "Review algebra notes", "subject": "Math",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := data(t, body)["task"].(map[string]any)
	taskID := task["id"].(string)
	assert.Equal(t, "Review algebra notes", task["text"])
	assert.Equal(t, false, task["completed"])

	resp, body = client.do("GET", "/api/todos/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := data(t, body)["tasks"].([]any)
	require.Len(t, tasks, 1)

	resp, body = client.do("POST", "/api/todos/"+taskID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	toggled := data(t, body)["task"].(map[string]any)
	assert.Equal(t, true, toggled["completed"])

	resp, _ = client.do("POST", "/api/todos/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
