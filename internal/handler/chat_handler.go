package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
	"github.com/ugalabz/oracle-server/internal/service"
)

// recoveryReply is stored when an agent has no persona backing it or the
// generation pipeline errors unexpectedly. Users never see a raw error.
const recoveryReply = "I'm experiencing some technical difficulties right now. Please try again in a moment."

// ChatHandler handles per-agent chat message persistence and replies.
type ChatHandler struct {
	store  port.AgentStore
	oracle *service.Oracle
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(store port.AgentStore, oracle *service.Oracle) *ChatHandler {
	return &ChatHandler{store: store, oracle: oracle}
}

// Register sets up chat message routes.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/agents/:id/messages", h.List)
	router.Post("/agents/:id/messages", h.Create)
}

// List returns an agent's conversation history.
func (h *ChatHandler) List(c fiber.Ctx) error {
	agentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent id"})
	}

	messages, err := h.store.ListMessages(c.Context(), agentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch messages"})
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return c.JSON(messages)
}

// Create stores the user's message, generates the agent's reply, and
// stores it. The user message is always persisted before the reply, and a
// reply is stored even when generation fails.
func (h *ChatHandler) Create(c fiber.Ctx) error {
	agentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent id"})
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid message data"})
	}

	agent, err := h.store.GetAgent(c.Context(), agentID)
	if errors.Is(err, port.ErrAgentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agent not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch agent"})
	}

	userMessage, err := h.store.CreateMessage(c.Context(), &domain.ChatMessage{
		AgentID: agentID,
		Message: body.Message,
		Sender:  domain.SenderUser,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create message"})
	}

	reply := recoveryReply
	if personaID, ok := service.PersonaForAgentName(agent.Name); ok {
		if generated, err := h.oracle.Respond(c.Context(), personaID, body.Message); err == nil {
			reply = generated
		} else {
			slog.Error("agent reply failed", "agent_id", agentID, "error", err)
		}
	}

	if _, err := h.store.CreateMessage(c.Context(), &domain.ChatMessage{
		AgentID: agentID,
		Message: reply,
		Sender:  domain.SenderAgent,
	}); err != nil {
		slog.Error("store agent reply failed", "agent_id", agentID, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(userMessage)
}
