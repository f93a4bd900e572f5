package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type listRequest struct {
	// Price is the asking price in display units, e.g. "5" or "12.5".
	Price string `json:"price"`
}

func (r listRequest) Validate() error {
	var errList []error
	if r.Price == "" {
		errList = append(errList, errors.New("'price' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type listResponse = HttpResponse[workflow.AnalysisResult]

func (h *HttpHandler) List(ctx *fiber.Ctx) (err error) {
	var req listRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.controller.List(ctx.UserContext(), req.Price)
	if err != nil {
		return errors.WithStack(asPublicError(err))
	}

	resp := listResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
