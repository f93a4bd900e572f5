package api

import (
	"github.com/aria-network/rwa-gateway/modules/wallet/api/httphandler"
	"github.com/aria-network/rwa-gateway/modules/wallet/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(usecase)
}
