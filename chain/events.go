package chain

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrValidation wraps malformed or incomplete event payloads. Events
// failing validation are surfaced to the operator and never retried.
var ErrValidation = errors.New("invalid event payload")

// Kind enumerates the bounty contract event types.
type Kind uint8

const (
	KindBountyIssued Kind = iota + 1
	KindBountyActivated
	KindBountyFulfilled
	KindFulfillmentUpdated
	KindFulfillmentAccepted
	KindBountyKilled
	KindContributionAdded
	KindDeadlineExtended
	KindBountyChanged
	KindIssuerTransferred
	KindPayoutIncreased
)

var kindName = map[Kind]string{
	KindBountyIssued:        "BountyIssued",
	KindBountyActivated:     "BountyActivated",
	KindBountyFulfilled:     "BountyFulfilled",
	KindFulfillmentUpdated:  "FulfillmentUpdated",
	KindFulfillmentAccepted: "FulfillmentAccepted",
	KindBountyKilled:        "BountyKilled",
	KindContributionAdded:   "ContributionAdded",
	KindDeadlineExtended:    "DeadlineExtended",
	KindBountyChanged:       "BountyChanged",
	KindIssuerTransferred:   "IssuerTransferred",
	KindPayoutIncreased:     "PayoutIncreased",
}

// String returns the string of event kind
func (k Kind) String() string {
	if _, ok := kindName[k]; !ok {
		return "unknown"
	}

	return kindName[k]
}

// Event is a decoded bounty contract event. Exactly one payload pointer
// matching Kind is non-nil. Chain position fields define the application
// order for a bounty.
type Event struct {
	Kind        Kind
	BountyID    uint64
	BlockNumber uint64
	TxHash      string
	LogIndex    uint
	Timestamp   int64

	Issued       *BountyIssued
	Activated    *BountyActivated
	Fulfilled    *BountyFulfilled
	FulfillmentU *FulfillmentUpdated
	Accepted     *FulfillmentAccepted
	Killed       *BountyKilled
	Contribution *ContributionAdded
	Extended     *DeadlineExtended
	Changed      *BountyChanged
	Transferred  *IssuerTransferred
	Payout       *PayoutIncreased
}

// BountyIssued carries the inputs of a v1 issueBounty or v2 issueBounty
// call. OriginalID is the stable on-chain sequence number; it differs from
// BountyID for child re-issues.
type BountyIssued struct {
	BountyID          uint64
	OriginalID        uint64
	ContractVersion   uint `validate:"oneof=1 2"`
	Issuer            string
	Issuers           []string
	Deadline          int64
	Data              string
	FulfillmentAmount decimal.Decimal
	Arbiter           string
	PaysTokens        bool
	TokenContract     string
	TokenVersion      int64
	Token             string
	Value             decimal.Decimal
}

// BountyActivated marks an issuer funding confirmation.
type BountyActivated struct {
	Issuer string
}

// BountyFulfilled carries a worker submission.
type BountyFulfilled struct {
	FulfillmentID uint64
	Fulfiller     string `validate:"required"`
	Data          string
}

// FulfillmentUpdated re-points a submission at new content.
type FulfillmentUpdated struct {
	FulfillmentID uint64
	Data          string
}

// FulfillmentAccepted marks a submission accepted for payout.
type FulfillmentAccepted struct {
	FulfillmentID uint64
}

// BountyKilled drains a bounty.
type BountyKilled struct{}

// ContributionAdded credits the bounty balance.
type ContributionAdded struct {
	Contributor string
	Value       decimal.Decimal
}

// DeadlineExtended replaces the bounty deadline.
type DeadlineExtended struct {
	NewDeadline int64 `validate:"gt=0"`
}

// BountyChanged is a partial update; zero-valued fields are absent and
// leave the bounty untouched.
type BountyChanged struct {
	NewData              string
	NewDeadline          int64
	NewFulfillmentAmount *decimal.Decimal
	NewArbiter           string
}

// IssuerTransferred hands the bounty to a new issuer.
type IssuerTransferred struct {
	NewIssuer string `validate:"required"`
}

// PayoutIncreased raises the fulfillment amount, optionally topping up the
// balance.
type PayoutIncreased struct {
	NewFulfillmentAmount decimal.Decimal
	Value                *decimal.Decimal
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateBountyIssued, BountyIssued{})
	return v
}

func validateBountyIssued(sl validator.StructLevel) {
	ev := sl.Current().Interface().(BountyIssued)
	switch ev.ContractVersion {
	case 1:
		if ev.Issuer == "" {
			sl.ReportError(ev.Issuer, "Issuer", "issuer", "required", "")
		}
		if ev.PaysTokens && ev.TokenContract == "" {
			sl.ReportError(ev.TokenContract, "TokenContract", "tokenContract", "required", "")
		}
	case 2:
		if len(ev.Issuers) == 0 {
			sl.ReportError(ev.Issuers, "Issuers", "issuers", "required", "")
		}
		if ev.TokenVersion != 0 && ev.Token == "" {
			sl.ReportError(ev.Token, "Token", "token", "required", "")
		}
	}
}

// Validate checks the event payload against the per-kind field rules.
func (e *Event) Validate() error {
	payload := e.payload()
	if payload == nil {
		return errors.Wrapf(ErrValidation, "%s event carries no payload", e.Kind)
	}

	if err := validate.Struct(payload); err != nil {
		return errors.Wrapf(ErrValidation, "%s event for bounty %d: %v",
			e.Kind, e.BountyID, err)
	}

	return nil
}

func (e *Event) payload() interface{} {
	switch e.Kind {
	case KindBountyIssued:
		if e.Issued != nil {
			return *e.Issued
		}
	case KindBountyActivated:
		if e.Activated != nil {
			return *e.Activated
		}
	case KindBountyFulfilled:
		if e.Fulfilled != nil {
			return *e.Fulfilled
		}
	case KindFulfillmentUpdated:
		if e.FulfillmentU != nil {
			return *e.FulfillmentU
		}
	case KindFulfillmentAccepted:
		if e.Accepted != nil {
			return *e.Accepted
		}
	case KindBountyKilled:
		if e.Killed != nil {
			return *e.Killed
		}
	case KindContributionAdded:
		if e.Contribution != nil {
			return *e.Contribution
		}
	case KindDeadlineExtended:
		if e.Extended != nil {
			return *e.Extended
		}
	case KindBountyChanged:
		if e.Changed != nil {
			return *e.Changed
		}
	case KindIssuerTransferred:
		if e.Transferred != nil {
			return *e.Transferred
		}
	case KindPayoutIncreased:
		if e.Payout != nil {
			return *e.Payout
		}
	}

	return nil
}
