package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type getStateResponse = HttpResponse[workflow.Snapshot]

func (h *HttpHandler) GetState(ctx *fiber.Ctx) (err error) {
	snapshot := h.controller.State()

	resp := getStateResponse{
		Result: &snapshot,
	}

	return errors.WithStack(ctx.JSON(resp))
}
