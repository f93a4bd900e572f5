package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/workflow")

	r.Post("/document", h.SelectDocument)
	r.Post("/analyze", h.Analyze)
	r.Post("/mint", h.Mint)
	r.Post("/list", h.List)
	r.Get("/state", h.GetState)
	r.Get("/gallery", h.GetGallery)
	return nil
}
