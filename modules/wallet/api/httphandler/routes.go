package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Post("/wallet/connect", h.Connect)
	r.Post("/wallet/disconnect", h.Disconnect)
	r.Get("/wallet/session", h.GetSession)
	r.Get("/chain/profile", h.GetChainProfile)
	return nil
}
