package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
)

type stakeRequest struct {
	// Amount is the stake amount in display units, e.g. "100" or "2.5".
	Amount string `json:"amount"`
}

func (r stakeRequest) Validate() error {
	var errList []error
	if r.Amount == "" {
		errList = append(errList, errors.New("'amount' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type stakeResult struct {
	TransactionHash string `json:"transactionHash"`
	GasUsed         int64  `json:"gasUsed"`
}

type stakeResponse = HttpResponse[stakeResult]

func (h *HttpHandler) Stake(ctx *fiber.Ctx) (err error) {
	var req stakeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.service.Stake(ctx.UserContext(), req.Amount)
	if err != nil {
		return errors.WithStack(asPublicError(err))
	}

	resp := stakeResponse{
		Result: &stakeResult{
			TransactionHash: result.TransactionHash,
			GasUsed:         result.GasUsed,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
