package marketplace

import (
	"encoding/base64"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

// Execute-message builders for the marketplace contract. Buying targets the
// marketplace directly; listing goes through the collection contract, which
// forwards the token together with a base64-encoded start_sale hook.

type buyMsg struct {
	Buy buyMsgInner `json:"buy"`
}

type buyMsgInner struct {
	SaleId string `json:"sale_id"`
}

// NewBuyMsg builds the buy execute message for a sale. Funds covering the
// exact sale price must accompany the execution.
func NewBuyMsg(saleId string) any {
	return buyMsg{Buy: buyMsgInner{SaleId: saleId}}
}

type sendNFTMsg struct {
	SendNFT sendNFTMsgInner `json:"send_nft"`
}

type sendNFTMsgInner struct {
	Contract string `json:"contract"`
	TokenId  string `json:"token_id"`
	Msg      string `json:"msg"`
}

type startSaleHook struct {
	StartSale startSaleHookInner `json:"start_sale"`
}

type startSaleHookInner struct {
	Price     string         `json:"price"`
	CoinDenom coinDenom      `json:"coin_denom"`
	Recipient *saleRecipient `json:"recipient,omitempty"`
}

type coinDenom struct {
	NativeToken string `json:"native_token"`
}

type saleRecipient struct {
	Address string `json:"address"`
}

// NewListingMsg builds the cw721 send_nft execute message that lists a token
// for sale. The start_sale hook travels base64-encoded inside the transfer,
// so the marketplace opens the sale atomically with receiving the token.
// recipientAddress routes sale proceeds; empty means the seller keeps them.
func NewListingMsg(marketplaceAddress, tokenId string, priceMinor uint128.Uint128, denom, recipientAddress string) (any, error) {
	hook := startSaleHook{StartSale: startSaleHookInner{
		Price:     priceMinor.String(),
		CoinDenom: coinDenom{NativeToken: denom},
	}}
	if recipientAddress != "" {
		hook.StartSale.Recipient = &saleRecipient{Address: recipientAddress}
	}

	rawHook, err := json.Marshal(hook)
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal start_sale hook")
	}

	return sendNFTMsg{SendNFT: sendNFTMsgInner{
		Contract: marketplaceAddress,
		TokenId:  tokenId,
		Msg:      base64.StdEncoding.EncodeToString(rawHook),
	}}, nil
}
