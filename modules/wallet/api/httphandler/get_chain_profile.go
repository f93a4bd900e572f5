package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common"
)

type getChainProfileResponse = HttpResponse[common.ChainParams]

func (h *HttpHandler) GetChainProfile(ctx *fiber.Ctx) (err error) {
	profile := *h.usecase.ChainProfile()

	resp := getChainProfileResponse{
		Result: &profile,
	}

	return errors.WithStack(ctx.JSON(resp))
}
