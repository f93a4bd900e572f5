package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
)

type buyRequest struct {
	SaleId string `json:"saleId"`
}

func (r buyRequest) Validate() error {
	var errList []error
	if r.SaleId == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type buyResult struct {
	TransactionHash string `json:"transactionHash"`
	GasUsed         int64  `json:"gasUsed"`
}

type buyResponse = HttpResponse[buyResult]

func (h *HttpHandler) Buy(ctx *fiber.Ctx) (err error) {
	var req buyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.Buy(ctx.UserContext(), req.SaleId)
	if err != nil {
		switch {
		case errors.Is(err, errs.Unauthenticated):
			return errs.NewPublicError("wallet is not connected")
		case errors.Is(err, errs.Conflict):
			return errs.NewPublicError("sale is not open")
		case errors.Is(err, errs.InvalidArgument):
			return errs.NewPublicError("can't buy own listing")
		case errors.Is(err, errs.ExecutionFailed):
			return errs.WithPublicMessage(err, "transaction failed")
		}
		return errors.Wrap(err, "error during Buy")
	}

	resp := buyResponse{
		Result: &buyResult{
			TransactionHash: result.TransactionHash,
			GasUsed:         result.GasUsed,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
