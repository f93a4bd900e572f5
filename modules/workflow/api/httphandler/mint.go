package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type mintResponse = HttpResponse[workflow.AnalysisResult]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	result, err := h.controller.Mint(ctx.UserContext())
	if err != nil {
		return errors.WithStack(asPublicError(err))
	}

	resp := mintResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
