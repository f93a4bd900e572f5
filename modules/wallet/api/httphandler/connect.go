package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/internal/session"
)

type connectResponse = HttpResponse[session.Session]

func (h *HttpHandler) Connect(ctx *fiber.Ctx) (err error) {
	current, err := h.usecase.Connect(ctx.UserContext())
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("wallet exposes no accounts for this chain")
		}
		return errors.Wrap(err, "error during Connect")
	}

	resp := connectResponse{
		Result: &current,
	}

	return errors.WithStack(ctx.JSON(resp))
}
