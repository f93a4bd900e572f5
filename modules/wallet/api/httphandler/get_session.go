package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/internal/session"
)

type getSessionResult struct {
	Connected bool             `json:"connected"`
	Session   *session.Session `json:"session,omitempty"`
}

type getSessionResponse = HttpResponse[getSessionResult]

func (h *HttpHandler) GetSession(ctx *fiber.Ctx) (err error) {
	result := getSessionResult{}
	if current, ok := h.usecase.Session(); ok {
		result.Connected = true
		result.Session = &current
	}

	resp := getSessionResponse{
		Result: &result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
