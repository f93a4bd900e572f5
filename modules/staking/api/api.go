package api

import (
	"github.com/aria-network/rwa-gateway/modules/staking/api/httphandler"
	"github.com/aria-network/rwa-gateway/modules/staking/staking"
)

func NewHTTPHandler(service *staking.Service) *httphandler.HttpHandler {
	return httphandler.New(service)
}
