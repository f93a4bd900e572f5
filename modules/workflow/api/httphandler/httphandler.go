package httphandler

import (
	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type HttpHandler struct {
	controller *workflow.Controller
}

func New(controller *workflow.Controller) *HttpHandler {
	return &HttpHandler{
		controller: controller,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

// asPublicError translates controller rejections into user-facing messages;
// anything unrecognized stays internal.
func asPublicError(err error) error {
	switch {
	case errors.Is(err, errs.Unauthenticated):
		return errs.NewPublicError("wallet is not connected")
	case errors.Is(err, errs.Conflict):
		return errs.WithPublicMessage(err, "operation not allowed")
	case errors.Is(err, errs.InvalidArgument):
		return errs.WithPublicMessage(err, "validation error")
	case errors.Is(err, errs.ExecutionFailed):
		return errs.WithPublicMessage(err, "operation failed")
	}
	return err
}
