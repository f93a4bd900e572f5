package staking

// Wire shapes of the app, cw20 and staking contract messages.

type getAddressQuery struct {
	GetAddress getAddressQueryInner `json:"get_address"`
}

type getAddressQueryInner struct {
	Name string `json:"name"`
}

type balanceQuery struct {
	Balance balanceQueryInner `json:"balance"`
}

type balanceQueryInner struct {
	Address string `json:"address"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type stakerQuery struct {
	Staker stakerQueryInner `json:"staker"`
}

type stakerQueryInner struct {
	Address string `json:"address"`
}

type stakerResponse struct {
	Address string `json:"address"`
	Share   string `json:"share"`
	Balance string `json:"balance"`
}

type sendMsg struct {
	Send sendMsgInner `json:"send"`
}

type sendMsgInner struct {
	Contract string `json:"contract"`
	Amount   string `json:"amount"`
	Msg      string `json:"msg"`
}

type stakeTokensHook struct {
	StakeTokens struct{} `json:"stake_tokens"`
}
