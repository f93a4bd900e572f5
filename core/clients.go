package core

import "context"

// ContractQuerier issues read-only smart-contract queries. queryMsg is
// marshaled to the contract's JSON query message; the reply is unmarshaled
// into out. No side effects.
type ContractQuerier interface {
	QuerySmart(ctx context.Context, contractAddress string, queryMsg any, out any) error
}

// ChainExecutor submits a contract execution through the connected signing
// wallet and returns the broadcast result. A returned error means the
// transaction never reached the chain; a TxResult with nonzero Code means the
// contract rejected it.
type ChainExecutor interface {
	Execute(ctx context.Context, senderAddress, contractAddress string, msg any, memo string, funds []Coin) (TxResult, error)
}

// MetadataFetcher dereferences a content-addressed URI into a JSON document.
type MetadataFetcher interface {
	Fetch(ctx context.Context, uri string, out any) error
}
