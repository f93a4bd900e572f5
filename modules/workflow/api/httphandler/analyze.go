package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type analyzeResponse = HttpResponse[workflow.AnalysisResult]

func (h *HttpHandler) Analyze(ctx *fiber.Ctx) (err error) {
	result, err := h.controller.Analyze(ctx.UserContext())
	if err != nil {
		return errors.WithStack(asPublicError(err))
	}

	resp := analyzeResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
