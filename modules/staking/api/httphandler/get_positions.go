package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
)

type getPositionsRequest struct {
	Address string `params:"address"`
}

func (r getPositionsRequest) Validate() error {
	var errList []error
	if r.Address == "" {
		errList = append(errList, errors.New("'address' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getPositionsResult struct {
	TokenAddress   string `json:"tokenAddress"`
	StakingAddress string `json:"stakingAddress"`
	WalletBalance  string `json:"walletBalance"`
	StakedShare    string `json:"stakedShare"`
	StakedBalance  string `json:"stakedBalance"`
}

type getPositionsResponse = HttpResponse[getPositionsResult]

func (h *HttpHandler) GetPositions(ctx *fiber.Ctx) (err error) {
	var req getPositionsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	position, err := h.service.Positions(ctx.UserContext(), req.Address)
	if err != nil {
		return errors.Wrap(asPublicError(err), "error during Positions")
	}

	resp := getPositionsResponse{
		Result: &getPositionsResult{
			TokenAddress:   position.TokenAddress,
			StakingAddress: position.StakingAddress,
			WalletBalance:  position.WalletBalance.String(),
			StakedShare:    position.StakedShare.String(),
			StakedBalance:  position.StakedBalance.String(),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
