package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/staking")

	r.Get("/positions/:address", h.GetPositions)
	r.Post("/stake", h.Stake)
	return nil
}
