package marketplace

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuyMsg(t *testing.T) {
	raw, err := json.Marshal(NewBuyMsg("42"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"buy":{"sale_id":"42"}}`, string(raw))
}

func TestNewListingMsg(t *testing.T) {
	msg, err := NewListingMsg("andr1marketplace", "deed-001", uint128.From64(5000000), "uandr", "andr1splitter")
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var envelope struct {
		SendNFT struct {
			Contract string `json:"contract"`
			TokenId  string `json:"token_id"`
			Msg      string `json:"msg"`
		} `json:"send_nft"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "andr1marketplace", envelope.SendNFT.Contract)
	assert.Equal(t, "deed-001", envelope.SendNFT.TokenId)

	rawHook, err := base64.StdEncoding.DecodeString(envelope.SendNFT.Msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"start_sale": {
			"price": "5000000",
			"coin_denom": {"native_token": "uandr"},
			"recipient": {"address": "andr1splitter"}
		}
	}`, string(rawHook))
}

func TestNewListingMsgWithoutRecipient(t *testing.T) {
	msg, err := NewListingMsg("andr1marketplace", "deed-001", uint128.From64(1), "uandr", "")
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var envelope struct {
		SendNFT struct {
			Msg string `json:"msg"`
		} `json:"send_nft"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))

	rawHook, err := base64.StdEncoding.DecodeString(envelope.SendNFT.Msg)
	require.NoError(t, err)
	assert.NotContains(t, string(rawHook), "recipient")
}
