package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ugalabz/oracle-server/internal/service"
)

// DocumentHandler handles corpus seeding and index statistics.
type DocumentHandler struct {
	seeder  *service.Seeder
	indexer *service.Indexer
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(seeder *service.Seeder, indexer *service.Indexer) *DocumentHandler {
	return &DocumentHandler{seeder: seeder, indexer: indexer}
}

// Register sets up document routes.
func (h *DocumentHandler) Register(router fiber.Router) {
	documents := router.Group("/documents")
	documents.Post("/seed", h.Seed)
	documents.Get("/stats", h.Stats)
}

// Seed indexes the corpus directory.
func (h *DocumentHandler) Seed(c fiber.Ctx) error {
	if _, err := h.seeder.SeedDirectory(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to seed documents"})
	}

	count, err := h.indexer.DocumentCount(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to get document stats"})
	}

	return c.JSON(fiber.Map{
		"message":       "Documents seeded successfully",
		"documentCount": count,
	})
}

// Stats returns the number of indexed documents.
func (h *DocumentHandler) Stats(c fiber.Ctx) error {
	count, err := h.indexer.DocumentCount(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to get document stats"})
	}
	return c.JSON(fiber.Map{"documentCount": count})
}
