package bounties

import (
	"context"
	"strings"
	"time"

	"github.com/photon-storage/go-common/log"
	"github.com/shopspring/decimal"

	"github.com/bounties-network/bounties-indexer/chain"
	"github.com/bounties-network/bounties-indexer/database/orm"
	"github.com/bounties-network/bounties-indexer/ipfs"
	"github.com/bounties-network/bounties-indexer/tokens"
)

// Client owns the bounty lifecycle state machine. One method per contract
// event type; every method assumes the caller delivers events for a given
// bounty in chain emission order and wraps the call in a database
// transaction via the Store it passes in.
type Client struct {
	content ContentResolver
	tokens  TokenResolver
	pricing PriceGateway
}

// NewClient returns a state machine backed by the given collaborators.
func NewClient(
	content ContentResolver,
	tokens TokenResolver,
	pricing PriceGateway,
) *Client {
	return &Client{
		content: content,
		tokens:  tokens,
		pricing: pricing,
	}
}

// IssueBounty constructs a new bounty from an issue event. v1 bounties
// start in DRAFT; v2 bounties are live on issuance and start in ACTIVE
// with a zero fulfillment amount that later payout events raise. A draft
// placeholder carrying the same uid is marked on-chain.
func (c *Client) IssueBounty(
	ctx context.Context,
	s Store,
	ev *chain.BountyIssued,
	eventTimestamp int64,
) (*orm.Bounty, error) {
	eventDate := time.Unix(eventTimestamp, 0).UTC()

	content := c.resolveContent(ev.Data, ev.BountyID, 0)

	var (
		info   tokens.Info
		amount decimal.Decimal
		err    error
	)
	b := &orm.Bounty{
		ID:              ev.BountyID,
		BountyID:        ev.OriginalID,
		ContractVersion: ev.ContractVersion,
		BountyCreated:   eventDate,
	}

	switch ev.ContractVersion {
	case 1:
		info, err = c.tokens.Resolve(ctx, ev.PaysTokens, ev.TokenContract)
		if err != nil {
			return nil, err
		}

		amount = ev.FulfillmentAmount
		b.Issuer = strings.ToLower(ev.Issuer)
		b.PaysTokens = ev.PaysTokens
		b.TokenContract = ev.TokenContract
		b.Stage = orm.StageDraft
		b.Balance = ev.Value

	case 2:
		info, err = c.tokens.ResolveV2(ctx, ev.TokenVersion, ev.Token)
		if err != nil {
			return nil, err
		}

		// The v2 contract does not carry a fulfillment amount at issuance;
		// it stays zero until the first payout increase.
		amount = decimal.Zero
		b.Issuer = strings.ToLower(ev.Issuers[0])
		b.PaysTokens = ev.TokenVersion != 0
		b.TokenContract = ev.Token
		b.Stage = orm.StageActive
		b.Balance = ev.Value
	}

	usd, tokenRef, err := c.pricing.Current(info.Symbol, info.Decimals, amount)
	if err != nil {
		return nil, err
	}

	b.Arbiter = ev.Arbiter
	b.Deadline = timePtr(ev.Deadline)
	b.FulfillmentAmount = amount
	b.TokenSymbol = info.Symbol
	b.TokenDecimals = info.Decimals
	b.UsdPrice = usd
	if tokenRef != nil {
		b.TokenID = &tokenRef.ID
	}

	applyBountyContent(b, content.Fields)

	if err := s.CreateBounty(b); err != nil {
		return nil, err
	}

	if err := appendState(s, b, eventDate); err != nil {
		return nil, err
	}

	if b.UID != "" {
		if err := s.MarkDraftOnChain(b.UID); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// ActivateBounty transitions the bounty to ACTIVE unconditionally; the
// funds transfer backing the activation was already validated on-chain.
func (c *Client) ActivateBounty(
	s Store,
	b *orm.Bounty,
	eventTimestamp int64,
) (*orm.Bounty, error) {
	eventDate := time.Unix(eventTimestamp, 0).UTC()
	b.Stage = orm.StageActive
	if err := appendState(s, b, eventDate); err != nil {
		return nil, err
	}

	return b, s.SaveBounty(b)
}

// FulfillBounty records a worker submission. A fulfillment that already
// exists for (bounty_id, fulfillment_id) makes the event a no-op, which
// keeps at-least-once delivery safe; the nil result tells the caller
// nothing new was created.
func (c *Client) FulfillBounty(
	s Store,
	b *orm.Bounty,
	ev *chain.BountyFulfilled,
	eventTimestamp int64,
) (*orm.Fulfillment, error) {
	exists, err := s.FulfillmentExists(b.BountyID, ev.FulfillmentID)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, nil
	}

	content := c.resolveContent(ev.Data, b.BountyID, ev.FulfillmentID)

	f := &orm.Fulfillment{
		BountyID:           b.BountyID,
		FulfillmentID:      ev.FulfillmentID,
		Fulfiller:          strings.ToLower(ev.Fulfiller),
		Accepted:           false,
		FulfillmentCreated: time.Unix(eventTimestamp, 0).UTC(),
	}
	applyFulfillmentContent(f, content.Fields)

	if err := s.CreateFulfillment(f); err != nil {
		// The unique constraint is the authoritative replay guard; losing
		// the race to a concurrent duplicate delivery is still a no-op.
		if err == ErrDuplicateFulfillment {
			return nil, nil
		}

		return nil, err
	}

	return f, nil
}

// UpdateFulfillment re-resolves the submission content. Monetary fields
// and acceptance state are never touched.
func (c *Client) UpdateFulfillment(
	s Store,
	b *orm.Bounty,
	ev *chain.FulfillmentUpdated,
) (*orm.Fulfillment, error) {
	f, err := s.GetFulfillment(b.BountyID, ev.FulfillmentID)
	if err != nil {
		return nil, err
	}

	content := c.resolveContent(ev.Data, b.BountyID, ev.FulfillmentID)
	applyFulfillmentContent(f, content.Fields)

	return f, s.SaveFulfillment(f)
}

// AcceptFulfillment debits the bounty balance by the fulfillment amount,
// captures the historical USD value at the event timestamp and marks the
// fulfillment accepted. If the remaining balance cannot cover another
// payout the bounty completes. Both rows commit in the caller's
// transaction as one unit.
func (c *Client) AcceptFulfillment(
	ctx context.Context,
	s Store,
	b *orm.Bounty,
	ev *chain.FulfillmentAccepted,
	eventTimestamp int64,
) (*orm.Fulfillment, error) {
	f, err := s.GetFulfillment(b.BountyID, ev.FulfillmentID)
	if err != nil {
		return nil, err
	}

	eventDate := time.Unix(eventTimestamp, 0).UTC()
	b.Balance = b.Balance.Sub(b.FulfillmentAmount)

	usd, rate, err := c.pricing.Historical(
		ctx,
		b.TokenSymbol,
		b.TokenDecimals,
		b.FulfillmentAmount,
		eventTimestamp,
	)
	if err != nil {
		return nil, err
	}

	if b.Balance.LessThan(b.FulfillmentAmount) {
		b.Stage = orm.StageCompleted
		b.UsdPrice = usd
		b.TokenLockPrice = rate
		if err := appendState(s, b, eventDate); err != nil {
			return nil, err
		}
	}

	if err := s.SaveBounty(b); err != nil {
		return nil, err
	}

	f.Accepted = true
	f.UsdPrice = usd
	f.AcceptedDate = &eventDate

	return f, s.SaveFulfillment(f)
}

// KillBounty drains the bounty. The pre-kill balance is retained for
// audit. A bounty that already paid out at least once completes instead
// of dying.
func (c *Client) KillBounty(
	ctx context.Context,
	s Store,
	b *orm.Bounty,
	eventTimestamp int64,
) (*orm.Bounty, error) {
	eventDate := time.Unix(eventTimestamp, 0).UTC()
	b.OldBalance = b.Balance
	b.Balance = decimal.Zero

	usd, rate, err := c.pricing.Historical(
		ctx,
		b.TokenSymbol,
		b.TokenDecimals,
		b.FulfillmentAmount,
		eventTimestamp,
	)
	if err != nil {
		return nil, err
	}

	hasAccepted, err := s.HasAcceptedFulfillment(b.BountyID)
	if err != nil {
		return nil, err
	}

	if hasAccepted {
		b.Stage = orm.StageCompleted
	} else {
		b.Stage = orm.StageDead
	}

	b.UsdPrice = usd
	b.TokenLockPrice = rate
	if err := appendState(s, b, eventDate); err != nil {
		return nil, err
	}

	return b, s.SaveBounty(b)
}

// AddContribution credits the balance. A bounty that fell EXPIRED or
// COMPLETED comes back ACTIVE once the balance covers a payout again;
// re-activation out of COMPLETED also refreshes the current USD price.
func (c *Client) AddContribution(
	s Store,
	b *orm.Bounty,
	ev *chain.ContributionAdded,
	eventTimestamp int64,
) (*orm.Bounty, error) {
	eventDate := time.Unix(eventTimestamp, 0).UTC()
	b.Balance = b.Balance.Add(ev.Value)

	if b.Balance.GreaterThanOrEqual(b.FulfillmentAmount) &&
		b.Stage == orm.StageExpired {
		b.Stage = orm.StageActive
		if err := appendState(s, b, eventDate); err != nil {
			return nil, err
		}
	}

	if b.Balance.GreaterThanOrEqual(b.FulfillmentAmount) &&
		b.Stage == orm.StageCompleted {
		b.Stage = orm.StageActive
		if err := appendState(s, b, eventDate); err != nil {
			return nil, err
		}

		usd, _, err := c.pricing.Current(
			b.TokenSymbol,
			b.TokenDecimals,
			b.FulfillmentAmount,
		)
		if err != nil {
			return nil, err
		}

		b.UsdPrice = usd
	}

	return b, s.SaveBounty(b)
}

// ExtendDeadline replaces the deadline; a future deadline revives an
// EXPIRED bounty.
func (c *Client) ExtendDeadline(
	s Store,
	b *orm.Bounty,
	ev *chain.DeadlineExtended,
	eventTimestamp int64,
) (*orm.Bounty, error) {
	eventDate := time.Unix(eventTimestamp, 0).UTC()
	b.Deadline = timePtr(ev.NewDeadline)

	if b.Deadline.After(time.Now()) && b.Stage == orm.StageExpired {
		b.Stage = orm.StageActive
		if err := appendState(s, b, eventDate); err != nil {
			return nil, err
		}
	}

	return b, s.SaveBounty(b)
}

// ChangeBounty applies a partial update; absent fields stay untouched. A
// changed fulfillment amount re-resolves the current USD price in the
// same transaction so the amount and its valuation never diverge.
func (c *Client) ChangeBounty(
	s Store,
	b *orm.Bounty,
	ev *chain.BountyChanged,
) (*orm.Bounty, error) {
	if ev.NewData != "" {
		content := c.resolveContent(ev.NewData, b.BountyID, 0)
		applyBountyContent(b, content.Fields)
	}

	if ev.NewDeadline > 0 {
		b.Deadline = timePtr(ev.NewDeadline)
	}

	if ev.NewArbiter != "" {
		b.Arbiter = ev.NewArbiter
	}

	if ev.NewFulfillmentAmount != nil {
		b.FulfillmentAmount = *ev.NewFulfillmentAmount

		usd, _, err := c.pricing.Current(
			b.TokenSymbol,
			b.TokenDecimals,
			b.FulfillmentAmount,
		)
		if err != nil {
			return nil, err
		}

		b.UsdPrice = usd
	}

	return b, s.SaveBounty(b)
}

// TransferIssuer hands the bounty to a new issuer. The previous issuer is
// returned so the caller can notify both parties.
func (c *Client) TransferIssuer(
	s Store,
	b *orm.Bounty,
	ev *chain.IssuerTransferred,
) (*orm.Bounty, string, error) {
	previous := b.Issuer
	b.Issuer = strings.ToLower(ev.NewIssuer)

	return b, previous, s.SaveBounty(b)
}

// IncreasePayout raises the fulfillment amount, optionally crediting the
// balance, and re-resolves the current USD price for the new amount.
func (c *Client) IncreasePayout(
	s Store,
	b *orm.Bounty,
	ev *chain.PayoutIncreased,
) (*orm.Bounty, error) {
	if ev.Value != nil {
		b.Balance = b.Balance.Add(*ev.Value)
	}

	usd, _, err := c.pricing.Current(
		b.TokenSymbol,
		b.TokenDecimals,
		ev.NewFulfillmentAmount,
	)
	if err != nil {
		return nil, err
	}

	b.FulfillmentAmount = ev.NewFulfillmentAmount
	b.UsdPrice = usd

	return b, s.SaveBounty(b)
}

func (c *Client) resolveContent(
	hash string,
	bountyID uint64,
	fulfillmentID uint64,
) ipfs.Result {
	res := c.content.Resolve(hash)
	if res.Degraded {
		log.Warn("bounty content degraded to empty defaults",
			"bounty", bountyID,
			"fulfillment", fulfillmentID,
			"reason", res.Reason,
		)
	}

	return res
}

func applyBountyContent(b *orm.Bounty, f ipfs.Fields) {
	b.DataHash = f.Hash
	b.DataJSON = f.Raw
	b.Title = f.Title
	b.Description = f.Description
	b.Categories = strings.Join(f.Categories, ",")
	b.SourceFileName = f.SourceFileName
	b.SourceFileHash = f.SourceFileHash
	b.SourceDirHash = f.SourceDirHash
	b.WebReferenceURL = f.WebReferenceURL
	b.IssuerName = f.Contact.Name
	b.IssuerEmail = f.Contact.Email
	b.IssuerGithub = f.Contact.Github
	b.IssuerAddress = f.Contact.Address
	b.UID = f.UID
}

func applyFulfillmentContent(f *orm.Fulfillment, fields ipfs.Fields) {
	f.DataHash = fields.Hash
	f.DataJSON = fields.Raw
	f.Description = fields.Description
	f.SourceFileName = fields.SourceFileName
	f.SourceFileHash = fields.SourceFileHash
	f.SourceDirHash = fields.SourceDirHash
	f.FulfillerName = fields.Contact.Name
	f.FulfillerEmail = fields.Contact.Email
	f.FulfillerGithub = fields.Contact.Github
	f.FulfillerAddress = fields.Contact.Address
}

func appendState(s Store, b *orm.Bounty, at time.Time) error {
	return s.AppendBountyState(&orm.BountyState{
		BountyID:       b.BountyID,
		Stage:          b.Stage,
		UsdPrice:       b.UsdPrice,
		TokenLockPrice: b.TokenLockPrice,
		RecordDate:     at,
	})
}

func timePtr(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}

	t := time.Unix(ts, 0).UTC()
	return &t
}
