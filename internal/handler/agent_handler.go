package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ugalabz/oracle-server/internal/domain"
	"github.com/ugalabz/oracle-server/internal/port"
)

// AgentHandler handles agent CRUD.
type AgentHandler struct {
	store port.AgentStore
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(store port.AgentStore) *AgentHandler {
	return &AgentHandler{store: store}
}

// Register sets up agent routes.
func (h *AgentHandler) Register(router fiber.Router) {
	agents := router.Group("/agents")
	agents.Get("/", h.List)
	agents.Get("/:id", h.Get)
	agents.Post("/", h.Create)
	agents.Put("/:id", h.Update)
	agents.Delete("/:id", h.Delete)
}

// List returns all agents.
func (h *AgentHandler) List(c fiber.Ctx) error {
	agents, err := h.store.ListAgents(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch agents"})
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return c.JSON(agents)
}

// Get returns a single agent by ID.
func (h *AgentHandler) Get(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent id"})
	}

	agent, err := h.store.GetAgent(c.Context(), id)
	if errors.Is(err, port.ErrAgentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agent not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch agent"})
	}
	return c.JSON(agent)
}

// Create inserts a new agent.
func (h *AgentHandler) Create(c fiber.Ctx) error {
	var body domain.Agent
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent data"})
	}
	if body.Name == "" || body.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent data"})
	}

	agent, err := h.store.CreateAgent(c.Context(), &body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create agent"})
	}
	return c.Status(fiber.StatusCreated).JSON(agent)
}

// Update applies a partial update to an agent.
func (h *AgentHandler) Update(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent id"})
	}

	var patch domain.AgentPatch
	if err := c.Bind().JSON(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent data"})
	}

	agent, err := h.store.UpdateAgent(c.Context(), id, patch)
	if errors.Is(err, port.ErrAgentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agent not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update agent"})
	}
	return c.JSON(agent)
}

// Delete removes an agent.
func (h *AgentHandler) Delete(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid agent id"})
	}

	err = h.store.DeleteAgent(c.Context(), id)
	if errors.Is(err, port.ErrAgentNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agent not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete agent"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
