package api

import (
	"github.com/aria-network/rwa-gateway/modules/workflow/api/httphandler"
	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

func NewHTTPHandler(controller *workflow.Controller) *httphandler.HttpHandler {
	return httphandler.New(controller)
}
