package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type disconnectResult struct {
	Disconnected bool `json:"disconnected"`
}

type disconnectResponse = HttpResponse[disconnectResult]

func (h *HttpHandler) Disconnect(ctx *fiber.Ctx) (err error) {
	h.usecase.Disconnect()

	resp := disconnectResponse{
		Result: &disconnectResult{
			Disconnected: true,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
