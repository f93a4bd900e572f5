package httphandler

import (
	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/staking/staking"
)

type HttpHandler struct {
	service *staking.Service
}

func New(service *staking.Service) *HttpHandler {
	return &HttpHandler{
		service: service,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

func asPublicError(err error) error {
	switch {
	case errors.Is(err, errs.Unauthenticated):
		return errs.NewPublicError("wallet is not connected")
	case errors.Is(err, errs.InvalidArgument):
		return errs.WithPublicMessage(err, "validation error")
	case errors.Is(err, errs.ExecutionFailed):
		return errs.WithPublicMessage(err, "operation failed")
	}
	return err
}
