package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type getGalleryResult struct {
	Items []workflow.AnalysisResult `json:"items"`
}

type getGalleryResponse = HttpResponse[getGalleryResult]

func (h *HttpHandler) GetGallery(ctx *fiber.Ctx) (err error) {
	items := h.controller.Gallery()

	resp := getGalleryResponse{
		Result: &getGalleryResult{
			Items: items,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
