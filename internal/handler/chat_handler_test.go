package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugalabz/oracle-server/internal/adapter/store"
	"github.com/ugalabz/oracle-server/internal/domain"
)

func newChatApp(ai *fakeAI) (*fiber.App, *store.MemoryStore) {
	mem := store.NewSeededMemoryStore()
	app := fiber.New()
	NewChatHandler(mem, newTestOracle(ai)).Register(app.Group("/api/v1"))
	return app, mem
}

func TestChatHandlerList(t *testing.T) {
	app, mem := newChatApp(&fakeAI{})

	t.Run("empty history is an empty array", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/v1/agents/1/messages", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decodeBody[[]domain.ChatMessage](t, resp))
	})

	t.Run("returns only the agent's messages", func(t *testing.T) {
		_, err := mem.CreateMessage(t.Context(), &domain.ChatMessage{AgentID: 1, Sender: domain.SenderUser, Message: "mine"})
		require.NoError(t, err)
		_, err = mem.CreateMessage(t.Context(), &domain.ChatMessage{AgentID: 2, Sender: domain.SenderUser, Message: "other"})
		require.NoError(t, err)

		resp := doJSON(t, app, http.MethodGet, "/api/v1/agents/1/messages", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		messages := decodeBody[[]domain.ChatMessage](t, resp)
		require.Len(t, messages, 1)
		assert.Equal(t, "mine", messages[0].Message)
	})
}

func TestChatHandlerCreate(t *testing.T) {
	t.Run("stores the user message and the generated reply", func(t *testing.T) {
		app, mem := newChatApp(&fakeAI{reply: "jungle wisdom"})

		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents/2/messages",
			`{"message":"explain the rewards loop"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		created := decodeBody[domain.ChatMessage](t, resp)
		assert.Equal(t, "explain the rewards loop", created.Message)
		assert.Equal(t, domain.SenderUser, created.Sender)

		messages, err := mem.ListMessages(t.Context(), 2)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, domain.SenderAgent, messages[1].Sender)
		assert.Equal(t, "jungle wisdom", messages[1].Message)
	})

	t.Run("agent without a persona still gets a reply", func(t *testing.T) {
		app, mem := newChatApp(&fakeAI{})
		custom, err := mem.CreateAgent(t.Context(), &domain.Agent{Name: "Custom Bot", Role: "helper"})
		require.NoError(t, err)

		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents/"+strconv.Itoa(custom.ID)+"/messages",
			`{"message":"anything at all"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		messages, err := mem.ListMessages(t.Context(), custom.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, recoveryReply, messages[1].Message)
	})

	t.Run("missing agent", func(t *testing.T) {
		app, _ := newChatApp(&fakeAI{})
		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents/99/messages", `{"message":"hi"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty message", func(t *testing.T) {
		app, _ := newChatApp(&fakeAI{})
		resp := doJSON(t, app, http.MethodPost, "/api/v1/agents/1/messages", `{"message":""}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
