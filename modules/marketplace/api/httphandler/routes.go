package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/marketplace")

	r.Get("/sales", h.ListSales)
	r.Post("/buy", h.Buy)
	return nil
}
