package bounties

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bounties-network/bounties-indexer/database/orm"
	"github.com/bounties-network/bounties-indexer/ipfs"
	"github.com/bounties-network/bounties-indexer/tokens"
)

var (
	// ErrBountyNotFound marks an event referencing a bounty that has not
	// been indexed yet; callers decide whether to requeue.
	ErrBountyNotFound = errors.New("bounty not found")

	// ErrFulfillmentNotFound marks an update or acceptance arriving before
	// the fulfillment it references.
	ErrFulfillmentNotFound = errors.New("fulfillment not found")

	// ErrDuplicateFulfillment is raised by the store when the unique
	// (bounty_id, fulfillment_id) constraint rejects an insert. The state
	// machine treats it as a successful no-op.
	ErrDuplicateFulfillment = errors.New("fulfillment already exists")
)

// Store is the transactional persistence surface the state machine
// mutates through. Implementations bind one Store to one database
// transaction so every operation applies atomically.
type Store interface {
	GetBounty(bountyID uint64) (*orm.Bounty, error)
	CreateBounty(b *orm.Bounty) error
	SaveBounty(b *orm.Bounty) error
	GetFulfillment(bountyID, fulfillmentID uint64) (*orm.Fulfillment, error)
	FulfillmentExists(bountyID, fulfillmentID uint64) (bool, error)
	CreateFulfillment(f *orm.Fulfillment) error
	SaveFulfillment(f *orm.Fulfillment) error
	HasAcceptedFulfillment(bountyID uint64) (bool, error)
	AppendBountyState(st *orm.BountyState) error
	MarkDraftOnChain(uid string) error
}

// ContentResolver resolves content-addressed bounty metadata.
type ContentResolver interface {
	Resolve(hash string) ipfs.Result
}

// TokenResolver resolves the paying token denomination of a bounty.
type TokenResolver interface {
	Resolve(ctx context.Context, paysTokens bool, contract string) (tokens.Info, error)
	ResolveV2(ctx context.Context, tokenVersion int64, contract string) (tokens.Info, error)
}

// PriceGateway resolves USD values at the current registry rate or at a
// historical timestamp.
type PriceGateway interface {
	Current(
		symbol string,
		decimals uint,
		amount decimal.Decimal,
	) (decimal.Decimal, *orm.Token, error)
	Historical(
		ctx context.Context,
		symbol string,
		decimals uint,
		amount decimal.Decimal,
		timestamp int64,
	) (decimal.Decimal, decimal.Decimal, error)
}
