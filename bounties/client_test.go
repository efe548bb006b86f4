package bounties

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bounties-network/bounties-indexer/chain"
	"github.com/bounties-network/bounties-indexer/database/orm"
	"github.com/bounties-network/bounties-indexer/ipfs"
	"github.com/bounties-network/bounties-indexer/tokens"
)

type fulfillmentKey struct {
	bountyID      uint64
	fulfillmentID uint64
}

type fakeStore struct {
	bounties            map[uint64]*orm.Bounty
	fulfillments        map[fulfillmentKey]*orm.Fulfillment
	states              []*orm.BountyState
	markedDrafts        []string
	hasAccepted         bool
	dupOnCreate         bool
	failSaveBounty      bool
	failSaveFulfillment bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bounties:     map[uint64]*orm.Bounty{},
		fulfillments: map[fulfillmentKey]*orm.Fulfillment{},
	}
}

func (s *fakeStore) GetBounty(bountyID uint64) (*orm.Bounty, error) {
	b, ok := s.bounties[bountyID]
	if !ok {
		return nil, ErrBountyNotFound
	}

	return b, nil
}

func (s *fakeStore) CreateBounty(b *orm.Bounty) error {
	s.bounties[b.ID] = b
	return nil
}

func (s *fakeStore) SaveBounty(b *orm.Bounty) error {
	if s.failSaveBounty {
		return errors.New("save bounty: connection lost")
	}

	s.bounties[b.ID] = b
	return nil
}

func (s *fakeStore) GetFulfillment(bountyID, fulfillmentID uint64) (*orm.Fulfillment, error) {
	f, ok := s.fulfillments[fulfillmentKey{bountyID, fulfillmentID}]
	if !ok {
		return nil, ErrFulfillmentNotFound
	}

	cp := *f
	return &cp, nil
}

func (s *fakeStore) FulfillmentExists(bountyID, fulfillmentID uint64) (bool, error) {
	_, ok := s.fulfillments[fulfillmentKey{bountyID, fulfillmentID}]
	return ok, nil
}

func (s *fakeStore) CreateFulfillment(f *orm.Fulfillment) error {
	if s.dupOnCreate {
		return ErrDuplicateFulfillment
	}

	s.fulfillments[fulfillmentKey{f.BountyID, f.FulfillmentID}] = f
	return nil
}

func (s *fakeStore) SaveFulfillment(f *orm.Fulfillment) error {
	if s.failSaveFulfillment {
		return errors.New("save fulfillment: connection lost")
	}

	s.fulfillments[fulfillmentKey{f.BountyID, f.FulfillmentID}] = f
	return nil
}

func (s *fakeStore) HasAcceptedFulfillment(bountyID uint64) (bool, error) {
	return s.hasAccepted, nil
}

func (s *fakeStore) AppendBountyState(st *orm.BountyState) error {
	s.states = append(s.states, st)
	return nil
}

func (s *fakeStore) MarkDraftOnChain(uid string) error {
	s.markedDrafts = append(s.markedDrafts, uid)
	return nil
}

type fakeContent struct {
	result ipfs.Result
}

func (c *fakeContent) Resolve(hash string) ipfs.Result {
	res := c.result
	res.Fields.Hash = hash
	return res
}

type fakeTokens struct {
	info tokens.Info
}

func (t *fakeTokens) Resolve(
	ctx context.Context,
	paysTokens bool,
	contract string,
) (tokens.Info, error) {
	if !paysTokens {
		return tokens.Info{Symbol: "ETH", Decimals: 18}, nil
	}

	return t.info, nil
}

func (t *fakeTokens) ResolveV2(
	ctx context.Context,
	tokenVersion int64,
	contract string,
) (tokens.Info, error) {
	if tokenVersion == 0 {
		return tokens.Info{Symbol: "ETH", Decimals: 18}, nil
	}

	return t.info, nil
}

type fakePricing struct {
	currentUSD     decimal.Decimal
	token          *orm.Token
	historicalUSD  decimal.Decimal
	historicalRate decimal.Decimal
	currentCalls   int
}

func (p *fakePricing) Current(
	symbol string,
	decimals uint,
	amount decimal.Decimal,
) (decimal.Decimal, *orm.Token, error) {
	p.currentCalls++
	return p.currentUSD, p.token, nil
}

func (p *fakePricing) Historical(
	ctx context.Context,
	symbol string,
	decimals uint,
	amount decimal.Decimal,
	timestamp int64,
) (decimal.Decimal, decimal.Decimal, error) {
	return p.historicalUSD, p.historicalRate, nil
}

func newTestClient(pricing *fakePricing) *Client {
	return NewClient(
		&fakeContent{},
		&fakeTokens{info: tokens.Info{Symbol: "DAI", Decimals: 18}},
		pricing,
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIssueBounty(t *testing.T) {
	testCases := []struct {
		name       string
		ev         *chain.BountyIssued
		wantStage  orm.Stage
		wantIssuer string
		wantAmount decimal.Decimal
	}{
		{
			name: "v1 issue starts in draft",
			ev: &chain.BountyIssued{
				BountyID:          7,
				OriginalID:        7,
				ContractVersion:   1,
				Issuer:            "0xABCDEF",
				Deadline:          1700000000,
				FulfillmentAmount: dec("1000000000000000000"),
				PaysTokens:        false,
				Value:             dec("2000000000000000000"),
			},
			wantStage:  orm.StageDraft,
			wantIssuer: "0xabcdef",
			wantAmount: dec("1000000000000000000"),
		},
		{
			name: "v2 issue starts active with zero fulfillment amount",
			ev: &chain.BountyIssued{
				BountyID:        8,
				OriginalID:      8,
				ContractVersion: 2,
				Issuers:         []string{"0xFEEDBEEF"},
				Deadline:        1700000000,
				TokenVersion:    0,
				Value:           dec("500"),
			},
			wantStage:  orm.StageActive,
			wantIssuer: "0xfeedbeef",
			wantAmount: decimal.Zero,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			client := newTestClient(&fakePricing{currentUSD: dec("2.5")})

			b, err := client.IssueBounty(context.Background(), s, c.ev, 1650000000)
			if err != nil {
				t.Fatalf("issue bounty error = %v", err)
			}

			if b.Stage != c.wantStage {
				t.Errorf("stage = %v, want %v", b.Stage, c.wantStage)
			}
			if b.Issuer != c.wantIssuer {
				t.Errorf("issuer = %v, want %v", b.Issuer, c.wantIssuer)
			}
			if !b.FulfillmentAmount.Equal(c.wantAmount) {
				t.Errorf("fulfillment amount = %v, want %v",
					b.FulfillmentAmount, c.wantAmount)
			}
			if !b.Balance.Equal(c.ev.Value) {
				t.Errorf("balance = %v, want %v", b.Balance, c.ev.Value)
			}
			if len(s.states) != 1 {
				t.Errorf("state snapshots = %d, want 1", len(s.states))
			}
		})
	}
}

func TestIssueBountyMarksDraftOnChain(t *testing.T) {
	s := newFakeStore()
	client := NewClient(
		&fakeContent{result: ipfs.Result{Fields: ipfs.Fields{UID: "draft-42"}}},
		&fakeTokens{},
		&fakePricing{},
	)

	_, err := client.IssueBounty(context.Background(), s, &chain.BountyIssued{
		BountyID:        1,
		OriginalID:      1,
		ContractVersion: 1,
		Issuer:          "0xaa",
	}, 1650000000)
	if err != nil {
		t.Fatalf("issue bounty error = %v", err)
	}

	if len(s.markedDrafts) != 1 || s.markedDrafts[0] != "draft-42" {
		t.Errorf("marked drafts = %v, want [draft-42]", s.markedDrafts)
	}
}

func TestFulfillBountyDuplicateIsNoop(t *testing.T) {
	s := newFakeStore()
	client := newTestClient(&fakePricing{})
	b := &orm.Bounty{ID: 1, BountyID: 1, Stage: orm.StageActive}

	ev := &chain.BountyFulfilled{FulfillmentID: 0, Fulfiller: "0xBEEF"}
	f, err := client.FulfillBounty(s, b, ev, 1650000000)
	if err != nil {
		t.Fatalf("first fulfill error = %v", err)
	}
	if f == nil {
		t.Fatal("first fulfill returned nil fulfillment")
	}
	if f.Fulfiller != "0xbeef" {
		t.Errorf("fulfiller = %v, want 0xbeef", f.Fulfiller)
	}

	f, err = client.FulfillBounty(s, b, ev, 1650000001)
	if err != nil {
		t.Fatalf("replayed fulfill error = %v", err)
	}
	if f != nil {
		t.Error("replayed fulfill created a new row")
	}
	if len(s.fulfillments) != 1 {
		t.Errorf("fulfillment rows = %d, want 1", len(s.fulfillments))
	}
}

func TestFulfillBountyDuplicateOnInsertRace(t *testing.T) {
	s := newFakeStore()
	s.dupOnCreate = true
	client := newTestClient(&fakePricing{})
	b := &orm.Bounty{ID: 1, BountyID: 1, Stage: orm.StageActive}

	f, err := client.FulfillBounty(s, b, &chain.BountyFulfilled{
		FulfillmentID: 3,
		Fulfiller:     "0xbeef",
	}, 1650000000)
	if err != nil {
		t.Fatalf("fulfill error = %v", err)
	}
	if f != nil {
		t.Error("duplicate insert should yield a nil fulfillment")
	}
}

func TestAcceptFulfillment(t *testing.T) {
	testCases := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		wantStage   orm.Stage
		wantStates  int
	}{
		{
			name:        "remaining balance covers another payout",
			balance:     dec("3000"),
			amount:      dec("1000"),
			wantBalance: dec("2000"),
			wantStage:   orm.StageActive,
			wantStates:  0,
		},
		{
			name:        "drained balance completes the bounty",
			balance:     dec("1000"),
			amount:      dec("1000"),
			wantBalance: dec("0"),
			wantStage:   orm.StageCompleted,
			wantStates:  1,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			b := &orm.Bounty{
				ID:                1,
				BountyID:          1,
				Stage:             orm.StageActive,
				Balance:           c.balance,
				FulfillmentAmount: c.amount,
				TokenSymbol:       "DAI",
				TokenDecimals:     18,
			}
			s.bounties[1] = b
			s.fulfillments[fulfillmentKey{1, 0}] = &orm.Fulfillment{
				BountyID:      1,
				FulfillmentID: 0,
			}

			pricing := &fakePricing{
				historicalUSD:  dec("1.5"),
				historicalRate: dec("1.0"),
			}
			client := newTestClient(pricing)

			f, err := client.AcceptFulfillment(
				context.Background(),
				s,
				b,
				&chain.FulfillmentAccepted{FulfillmentID: 0},
				1650000000,
			)
			if err != nil {
				t.Fatalf("accept fulfillment error = %v", err)
			}

			if !b.Balance.Equal(c.wantBalance) {
				t.Errorf("balance = %v, want %v", b.Balance, c.wantBalance)
			}
			if b.Stage != c.wantStage {
				t.Errorf("stage = %v, want %v", b.Stage, c.wantStage)
			}
			if len(s.states) != c.wantStates {
				t.Errorf("state snapshots = %d, want %d",
					len(s.states), c.wantStates)
			}
			if !f.Accepted {
				t.Error("fulfillment not marked accepted")
			}
			if f.AcceptedDate == nil {
				t.Error("accepted date not set")
			}
			if !f.UsdPrice.Equal(dec("1.5")) {
				t.Errorf("fulfillment usd price = %v, want 1.5", f.UsdPrice)
			}
		})
	}
}

// Both rows of an acceptance commit in the caller's transaction; an
// aborted write must surface so the transaction rolls back instead of
// leaving the balance debit without the accepted flag, or vice versa.
func TestAcceptFulfillmentAbortedWrite(t *testing.T) {
	testCases := []struct {
		name                string
		failSaveBounty      bool
		failSaveFulfillment bool
	}{
		{
			name:           "bounty write aborts",
			failSaveBounty: true,
		},
		{
			name:                "fulfillment write aborts after bounty write",
			failSaveFulfillment: true,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			s.failSaveBounty = c.failSaveBounty
			s.failSaveFulfillment = c.failSaveFulfillment
			b := &orm.Bounty{
				ID:                1,
				BountyID:          1,
				Stage:             orm.StageActive,
				Balance:           dec("3000"),
				FulfillmentAmount: dec("1000"),
			}
			s.bounties[1] = b
			s.fulfillments[fulfillmentKey{1, 0}] = &orm.Fulfillment{
				BountyID:      1,
				FulfillmentID: 0,
			}

			client := newTestClient(&fakePricing{
				historicalUSD:  dec("1.5"),
				historicalRate: dec("1.0"),
			})

			_, err := client.AcceptFulfillment(
				context.Background(),
				s,
				b,
				&chain.FulfillmentAccepted{FulfillmentID: 0},
				1650000000,
			)
			if err == nil {
				t.Fatal("aborted write did not surface an error")
			}

			stored := s.fulfillments[fulfillmentKey{1, 0}]
			if stored.Accepted {
				t.Error("fulfillment marked accepted despite aborted write")
			}
		})
	}
}

func TestAcceptFulfillmentMissingRow(t *testing.T) {
	s := newFakeStore()
	b := &orm.Bounty{ID: 1, BountyID: 1, Stage: orm.StageActive}
	client := newTestClient(&fakePricing{})

	_, err := client.AcceptFulfillment(
		context.Background(),
		s,
		b,
		&chain.FulfillmentAccepted{FulfillmentID: 9},
		1650000000,
	)
	if err != ErrFulfillmentNotFound {
		t.Errorf("error = %v, want %v", err, ErrFulfillmentNotFound)
	}
}

func TestKillBounty(t *testing.T) {
	testCases := []struct {
		name        string
		hasAccepted bool
		wantStage   orm.Stage
	}{
		{
			name:        "unpaid bounty dies",
			hasAccepted: false,
			wantStage:   orm.StageDead,
		},
		{
			name:        "paid bounty completes",
			hasAccepted: true,
			wantStage:   orm.StageCompleted,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			s.hasAccepted = c.hasAccepted
			b := &orm.Bounty{
				ID:                1,
				BountyID:          1,
				Stage:             orm.StageActive,
				Balance:           dec("5000"),
				FulfillmentAmount: dec("1000"),
			}
			s.bounties[1] = b

			client := newTestClient(&fakePricing{
				historicalUSD:  dec("2"),
				historicalRate: dec("1.1"),
			})

			got, err := client.KillBounty(context.Background(), s, b, 1650000000)
			if err != nil {
				t.Fatalf("kill bounty error = %v", err)
			}

			if got.Stage != c.wantStage {
				t.Errorf("stage = %v, want %v", got.Stage, c.wantStage)
			}
			if !got.Balance.IsZero() {
				t.Errorf("balance = %v, want 0", got.Balance)
			}
			if !got.OldBalance.Equal(dec("5000")) {
				t.Errorf("old balance = %v, want 5000", got.OldBalance)
			}
			if !got.TokenLockPrice.Equal(dec("1.1")) {
				t.Errorf("token lock price = %v, want 1.1", got.TokenLockPrice)
			}
			if len(s.states) != 1 {
				t.Errorf("state snapshots = %d, want 1", len(s.states))
			}
		})
	}
}

func TestAddContribution(t *testing.T) {
	testCases := []struct {
		name          string
		stage         orm.Stage
		balance       decimal.Decimal
		amount        decimal.Decimal
		value         decimal.Decimal
		wantStage     orm.Stage
		wantStates    int
		wantRepriced  bool
	}{
		{
			name:       "active bounty keeps stage",
			stage:      orm.StageActive,
			balance:    dec("100"),
			amount:     dec("1000"),
			value:      dec("50"),
			wantStage:  orm.StageActive,
			wantStates: 0,
		},
		{
			name:       "expired bounty revives once funded",
			stage:      orm.StageExpired,
			balance:    dec("100"),
			amount:     dec("1000"),
			value:      dec("900"),
			wantStage:  orm.StageActive,
			wantStates: 1,
		},
		{
			name:       "expired bounty stays expired when underfunded",
			stage:      orm.StageExpired,
			balance:    dec("100"),
			amount:     dec("1000"),
			value:      dec("100"),
			wantStage:  orm.StageExpired,
			wantStates: 0,
		},
		{
			name:         "completed bounty reactivates with fresh pricing",
			stage:        orm.StageCompleted,
			balance:      dec("0"),
			amount:       dec("1000"),
			value:        dec("1000"),
			wantStage:    orm.StageActive,
			wantStates:   1,
			wantRepriced: true,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			b := &orm.Bounty{
				ID:                1,
				BountyID:          1,
				Stage:             c.stage,
				Balance:           c.balance,
				FulfillmentAmount: c.amount,
			}
			s.bounties[1] = b

			pricing := &fakePricing{currentUSD: dec("7")}
			client := newTestClient(pricing)

			got, err := client.AddContribution(s, b, &chain.ContributionAdded{
				Contributor: "0xcc",
				Value:       c.value,
			}, 1650000000)
			if err != nil {
				t.Fatalf("add contribution error = %v", err)
			}

			if got.Stage != c.wantStage {
				t.Errorf("stage = %v, want %v", got.Stage, c.wantStage)
			}
			if !got.Balance.Equal(c.balance.Add(c.value)) {
				t.Errorf("balance = %v, want %v",
					got.Balance, c.balance.Add(c.value))
			}
			if len(s.states) != c.wantStates {
				t.Errorf("state snapshots = %d, want %d",
					len(s.states), c.wantStates)
			}
			if c.wantRepriced != (pricing.currentCalls > 0) {
				t.Errorf("repriced = %v, want %v",
					pricing.currentCalls > 0, c.wantRepriced)
			}
		})
	}
}

func TestBalanceArithmeticIsExact(t *testing.T) {
	s := newFakeStore()
	b := &orm.Bounty{
		ID:                1,
		BountyID:          1,
		Stage:             orm.StageActive,
		Balance:           decimal.Zero,
		FulfillmentAmount: dec("100000000000000000000"),
	}
	s.bounties[1] = b
	client := newTestClient(&fakePricing{})

	for _, v := range []string{"10000000010000000000", "5000000002000000000"} {
		if _, err := client.AddContribution(s, b, &chain.ContributionAdded{
			Value: dec(v),
		}, 1650000000); err != nil {
			t.Fatalf("add contribution error = %v", err)
		}
	}

	if want := dec("15000000012000000000"); !b.Balance.Equal(want) {
		t.Errorf("balance = %v, want %v", b.Balance, want)
	}
}

func TestExtendDeadline(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	past := time.Now().Add(-24 * time.Hour).Unix()

	testCases := []struct {
		name      string
		stage     orm.Stage
		deadline  int64
		wantStage orm.Stage
	}{
		{
			name:      "future deadline revives expired bounty",
			stage:     orm.StageExpired,
			deadline:  future,
			wantStage: orm.StageActive,
		},
		{
			name:      "past deadline leaves expired bounty",
			stage:     orm.StageExpired,
			deadline:  past,
			wantStage: orm.StageExpired,
		},
		{
			name:      "active bounty keeps stage",
			stage:     orm.StageActive,
			deadline:  future,
			wantStage: orm.StageActive,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			b := &orm.Bounty{ID: 1, BountyID: 1, Stage: c.stage}
			s.bounties[1] = b
			client := newTestClient(&fakePricing{})

			got, err := client.ExtendDeadline(s, b, &chain.DeadlineExtended{
				NewDeadline: c.deadline,
			}, 1650000000)
			if err != nil {
				t.Fatalf("extend deadline error = %v", err)
			}

			if got.Stage != c.wantStage {
				t.Errorf("stage = %v, want %v", got.Stage, c.wantStage)
			}
			if got.Deadline == nil || got.Deadline.Unix() != c.deadline {
				t.Errorf("deadline = %v, want %v", got.Deadline, c.deadline)
			}
		})
	}
}

func TestChangeBountyPartialUpdate(t *testing.T) {
	s := newFakeStore()
	deadline := time.Unix(1600000000, 0).UTC()
	b := &orm.Bounty{
		ID:                1,
		BountyID:          1,
		Stage:             orm.StageActive,
		Arbiter:           "0xold",
		Deadline:          &deadline,
		FulfillmentAmount: dec("1000"),
		UsdPrice:          dec("3"),
	}
	s.bounties[1] = b

	pricing := &fakePricing{currentUSD: dec("9")}
	client := newTestClient(pricing)

	got, err := client.ChangeBounty(s, b, &chain.BountyChanged{
		NewArbiter: "0xnew",
	})
	if err != nil {
		t.Fatalf("change bounty error = %v", err)
	}

	if got.Arbiter != "0xnew" {
		t.Errorf("arbiter = %v, want 0xnew", got.Arbiter)
	}
	if got.Deadline.Unix() != 1600000000 {
		t.Errorf("deadline changed to %v", got.Deadline)
	}
	if !got.UsdPrice.Equal(dec("3")) {
		t.Errorf("usd price changed to %v without amount change", got.UsdPrice)
	}
	if pricing.currentCalls != 0 {
		t.Error("repriced without a fulfillment amount change")
	}

	amount := dec("2000")
	got, err = client.ChangeBounty(s, b, &chain.BountyChanged{
		NewFulfillmentAmount: &amount,
	})
	if err != nil {
		t.Fatalf("change bounty error = %v", err)
	}

	if !got.FulfillmentAmount.Equal(amount) {
		t.Errorf("fulfillment amount = %v, want %v",
			got.FulfillmentAmount, amount)
	}
	if !got.UsdPrice.Equal(dec("9")) {
		t.Errorf("usd price = %v, want 9", got.UsdPrice)
	}
}

func TestTransferIssuer(t *testing.T) {
	s := newFakeStore()
	b := &orm.Bounty{ID: 1, BountyID: 1, Issuer: "0xold"}
	s.bounties[1] = b
	client := newTestClient(&fakePricing{})

	got, previous, err := client.TransferIssuer(s, b, &chain.IssuerTransferred{
		NewIssuer: "0xNEW",
	})
	if err != nil {
		t.Fatalf("transfer issuer error = %v", err)
	}

	if previous != "0xold" {
		t.Errorf("previous issuer = %v, want 0xold", previous)
	}
	if got.Issuer != "0xnew" {
		t.Errorf("issuer = %v, want 0xnew", got.Issuer)
	}
}

func TestIncreasePayout(t *testing.T) {
	value := dec("500")

	testCases := []struct {
		name        string
		value       *decimal.Decimal
		wantBalance decimal.Decimal
	}{
		{
			name:        "payout raise without top-up",
			value:       nil,
			wantBalance: dec("1000"),
		},
		{
			name:        "payout raise with balance top-up",
			value:       &value,
			wantBalance: dec("1500"),
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			s := newFakeStore()
			b := &orm.Bounty{
				ID:                1,
				BountyID:          1,
				Stage:             orm.StageActive,
				Balance:           dec("1000"),
				FulfillmentAmount: dec("200"),
			}
			s.bounties[1] = b
			client := newTestClient(&fakePricing{currentUSD: dec("4")})

			got, err := client.IncreasePayout(s, b, &chain.PayoutIncreased{
				NewFulfillmentAmount: dec("300"),
				Value:                c.value,
			})
			if err != nil {
				t.Fatalf("increase payout error = %v", err)
			}

			if !got.Balance.Equal(c.wantBalance) {
				t.Errorf("balance = %v, want %v", got.Balance, c.wantBalance)
			}
			if !got.FulfillmentAmount.Equal(dec("300")) {
				t.Errorf("fulfillment amount = %v, want 300",
					got.FulfillmentAmount)
			}
			if !got.UsdPrice.Equal(dec("4")) {
				t.Errorf("usd price = %v, want 4", got.UsdPrice)
			}
		})
	}
}
