package marketplace

// Wire shapes of the marketplace and collection contract queries. The query
// surface is narrow and relationally scoped: there is no single
// "list all open sales" query, which is why the aggregator exists.

const (
	// actionSendNFT scopes the authorized-addresses query to collections
	// allowed to list tokens on the marketplace.
	actionSendNFT = "send_nft"
)

type authorizedAddressesQuery struct {
	AuthorizedAddresses authorizedAddressesQueryInner `json:"authorized_addresses"`
}

type authorizedAddressesQueryInner struct {
	Action     string `json:"action"`
	Limit      int32  `json:"limit"`
	StartAfter string `json:"start_after,omitempty"`
}

type authorizedAddressesResponse struct {
	Addresses []string `json:"addresses"`
}

type saleInfosForAddressQuery struct {
	SaleInfosForAddress saleInfosForAddressQueryInner `json:"sale_infos_for_address"`
}

type saleInfosForAddressQueryInner struct {
	TokenAddress string `json:"token_address"`
	Limit        int32  `json:"limit"`
	StartAfter   string `json:"start_after,omitempty"`
}

type saleInfosForAddressResponse struct {
	SaleInfos []saleInfo `json:"sale_infos"`
}

// saleInfo relates one token to its full listing history. A token that has
// been re-listed carries several sale ids, at most one of which is open.
type saleInfo struct {
	TokenId string   `json:"token_id"`
	SaleIds []string `json:"sale_ids"`
}

type saleStateQuery struct {
	SaleState saleStateQueryInner `json:"sale_state"`
}

type saleStateQueryInner struct {
	SaleId string `json:"sale_id"`
}

type saleStateResponse struct {
	Status string    `json:"status"`
	Price  salePrice `json:"price"`
	Seller string    `json:"seller"`
}

type salePrice struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type nftInfoQuery struct {
	NFTInfo nftInfoQueryInner `json:"nft_info"`
}

type nftInfoQueryInner struct {
	TokenId string `json:"token_id"`
}

type nftInfoResponse struct {
	TokenURI string `json:"token_uri"`
}
