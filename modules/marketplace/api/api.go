package api

import (
	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/modules/marketplace/api/httphandler"
	"github.com/aria-network/rwa-gateway/modules/marketplace/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(network, usecase)
}
