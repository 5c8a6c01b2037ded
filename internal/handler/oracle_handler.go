package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/ugalabz/oracle-server/internal/port"
	"github.com/ugalabz/oracle-server/internal/service"
)

// OracleHandler exposes the direct persona chat endpoints.
type OracleHandler struct {
	oracle *service.Oracle
}

// NewOracleHandler creates a new oracle handler.
func NewOracleHandler(oracle *service.Oracle) *OracleHandler {
	return &OracleHandler{oracle: oracle}
}

// Register sets up oracle routes.
func (h *OracleHandler) Register(router fiber.Router) {
	oracle := router.Group("/oracle")
	oracle.Post("/:persona", h.Respond)
}

// Respond runs one chat turn for the persona in the path.
func (h *OracleHandler) Respond(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Message is required",
			"response": "Please provide a question or topic you'd like me to research.",
		})
	}

	response, err := h.oracle.Respond(c.Context(), c.Params("persona"), body.Message)
	if errors.Is(err, port.ErrPersonaNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown persona"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate response"})
	}

	return c.JSON(fiber.Map{"response": response})
}
