package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugalabz/oracle-server/internal/adapter/store"
	"github.com/ugalabz/oracle-server/internal/domain"
)

func newAgentApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	mem := store.NewSeededMemoryStore()
	app := fiber.New()
	NewAgentHandler(mem).Register(app.Group("/api/v1"))
	return app, mem
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAgentHandlerList(t *testing.T) {
	app, _ := newAgentApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/agents", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	agents := decodeBody[[]domain.Agent](t, resp)
	require.Len(t, agents, 2)
	assert.Equal(t, "Midnight Oracle", agents[0].Name)
}

func TestAgentHandlerGet(t *testing.T) {
	app, _ := newAgentApp(t)

	t.Run("found", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/agents/1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		agent := decodeBody[domain.Agent](t, resp)
		assert.Equal(t, 1, agent.ID)
	})

	t.Run("missing", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/agents/99", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/agents/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAgentHandlerCreate(t *testing.T) {
	app, mem := newAgentApp(t)

	t.Run("valid agent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents",
			`{"name":"New Agent","role":"tester","color":"red"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		agent := decodeBody[domain.Agent](t, resp)
		assert.Equal(t, "New Agent", agent.Name)
		assert.Equal(t, "online", agent.Status)

		agents, err := mem.ListAgents(t.Context())
		require.NoError(t, err)
		assert.Len(t, agents, 3)
	})

	t.Run("missing required fields", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents", `{"name":"nameless"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAgentHandlerUpdate(t *testing.T) {
	app, _ := newAgentApp(t)

	t.Run("partial patch", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/v1/agents/1", `{"status":"offline"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		agent := decodeBody[domain.Agent](t, resp)
		assert.Equal(t, "offline", agent.Status)
		assert.Equal(t, "Midnight Oracle", agent.Name)
	})

	t.Run("missing agent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/v1/agents/99", `{"status":"offline"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAgentHandlerDelete(t *testing.T) {
	app, mem := newAgentApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/agents/2", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	agents, err := mem.ListAgents(t.Context())
	require.NoError(t, err)
	assert.Len(t, agents, 1)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/agents/2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
