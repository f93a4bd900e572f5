package usecase

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/internal/session"
)

// Provider is the subset of the signing-wallet daemon the session flow
// needs: suggest/enable the chain profile and list the connected accounts.
type Provider interface {
	Enable(ctx context.Context, params *common.ChainParams) error
	Accounts(ctx context.Context) ([]string, error)
}

type Usecase struct {
	provider Provider
	sessions *session.Store
	params   *common.ChainParams
}

func New(provider Provider, sessions *session.Store, params *common.ChainParams) *Usecase {
	return &Usecase{
		provider: provider,
		sessions: sessions,
		params:   params,
	}
}

// Connect suggests the chain profile to the wallet, enables it and binds the
// wallet's first account to the local session. Connecting again replaces the
// previous session.
func (u *Usecase) Connect(ctx context.Context) (session.Session, error) {
	if err := u.provider.Enable(ctx, u.params); err != nil {
		return session.Session{}, errors.Wrap(err, "wallet refused to enable chain")
	}

	addresses, err := u.provider.Accounts(ctx)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "can't list wallet accounts")
	}
	if len(addresses) == 0 {
		return session.Session{}, errors.Wrap(errs.NotFound, "wallet exposes no accounts for this chain")
	}

	return u.sessions.Connect(addresses[0]), nil
}

// Disconnect clears the local session only; the wallet daemon keeps its own
// state, there is no revocation side effect.
func (u *Usecase) Disconnect() {
	u.sessions.Disconnect()
}

func (u *Usecase) Session() (session.Session, bool) {
	return u.sessions.Current()
}

func (u *Usecase) ChainProfile() *common.ChainParams {
	return u.params
}
