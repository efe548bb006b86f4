package notifications

import (
	"fmt"
	"time"

	"github.com/bounties-network/bounties-indexer/database/orm"
)

// Store is the persistence surface for projected rows. Notification
// inserts dedupe on uid so replayed events never double-notify.
type Store interface {
	CreateNotification(n *orm.Notification) error
	CreateActivity(a *orm.Activity) error
}

// Projector turns successfully applied bounty events into notification
// and activity records for the affected users. It never mutates bounty
// state; recipients are derived from the state machine's return values.
type Projector struct{}

// NewProjector returns a projector.
func NewProjector() *Projector {
	return &Projector{}
}

// BountyIssued notifies the issuer of their new bounty.
func (p *Projector) BountyIssued(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      BountyIssuedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyIssuedCode], b.Title),
		subject:   "New bounty issued",
		date:      date,
	})
}

// BountyActivated notifies the issuer their bounty is live.
func (p *Projector) BountyActivated(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      BountyActivatedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyActivatedCode], b.Title),
		subject:   "Bounty activated",
		date:      date,
	})
}

// BountyFulfilled notifies the fulfiller and the issuer of a new
// submission.
func (p *Projector) BountyFulfilled(
	s Store,
	uid string,
	b *orm.Bounty,
	f *orm.Fulfillment,
) error {
	if err := p.notify(s, note{
		uid:         uid + FulfillmentCreatedCode,
		code:        FulfillmentCreatedCode,
		recipient:   f.Fulfiller,
		from:        b.Issuer,
		bounty:      b,
		fulfillment: f,
		text:        fmt.Sprintf(templates[FulfillmentCreatedCode], b.Title),
		subject:     "New submission",
		date:        f.FulfillmentCreated,
	}); err != nil {
		return err
	}

	return p.notify(s, note{
		uid:          uid + FulfillmentCreatedCode + "issuer",
		code:         FulfillmentCreatedCode,
		recipient:    b.Issuer,
		from:         f.Fulfiller,
		bounty:       b,
		fulfillment:  f,
		text:         fmt.Sprintf(templates["FCRissuer"], b.Title),
		subject:      "New submission on your bounty",
		date:         f.FulfillmentCreated,
		skipActivity: true,
	})
}

// FulfillmentUpdated notifies the issuer a submission changed.
func (p *Projector) FulfillmentUpdated(
	s Store,
	uid string,
	b *orm.Bounty,
	f *orm.Fulfillment,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:         uid,
		code:        FulfillmentUpdatedCode,
		recipient:   b.Issuer,
		from:        f.Fulfiller,
		bounty:      b,
		fulfillment: f,
		text:        fmt.Sprintf(templates[FulfillmentUpdatedCode], b.Title),
		subject:     "Submission updated",
		date:        date,
	})
}

// FulfillmentAccepted notifies the fulfiller of the payout and the issuer
// of the acceptance.
func (p *Projector) FulfillmentAccepted(
	s Store,
	uid string,
	b *orm.Bounty,
	f *orm.Fulfillment,
) error {
	date := f.FulfillmentCreated
	if f.AcceptedDate != nil {
		date = *f.AcceptedDate
	}

	if err := p.notify(s, note{
		uid:         uid + FulfillmentAcceptedCode,
		code:        FulfillmentAcceptedCode,
		recipient:   f.Fulfiller,
		from:        b.Issuer,
		bounty:      b,
		fulfillment: f,
		text:        fmt.Sprintf(templates[FulfillmentAcceptedCode], b.Title),
		subject:     "Submission accepted",
		date:        date,
	}); err != nil {
		return err
	}

	return p.notify(s, note{
		uid:          uid + FulfillmentAcceptedCode + "issuer",
		code:         FulfillmentAcceptedCode,
		recipient:    b.Issuer,
		from:         f.Fulfiller,
		bounty:       b,
		fulfillment:  f,
		text:         fmt.Sprintf(templates["FACissuer"], b.Title),
		subject:      "You accepted a submission",
		date:         date,
		skipActivity: true,
	})
}

// BountyCompleted notifies the issuer their bounty has paid out in
// full.
func (p *Projector) BountyCompleted(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid + BountyCompletedCode,
		code:      BountyCompletedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyCompletedCode], b.Title),
		subject:   "Bounty completed",
		date:      date,
	})
}

// BountyKilled notifies the issuer their bounty was drained.
func (p *Projector) BountyKilled(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      BountyKilledCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyKilledCode], b.Title),
		subject:   "Bounty cancelled",
		date:      date,
	})
}

// ContributionAdded notifies the issuer of a balance credit.
func (p *Projector) ContributionAdded(
	s Store,
	uid string,
	b *orm.Bounty,
	contributor string,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      ContributionAddedCode,
		recipient: b.Issuer,
		from:      contributor,
		bounty:    b,
		text:      fmt.Sprintf(templates[ContributionAddedCode], b.Title),
		subject:   "Contribution added",
		date:      date,
	})
}

// DeadlineExtended notifies the issuer of the new deadline.
func (p *Projector) DeadlineExtended(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      DeadlineExtendedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[DeadlineExtendedCode], b.Title),
		subject:   "Deadline extended",
		date:      date,
	})
}

// BountyChanged notifies the issuer of the update.
func (p *Projector) BountyChanged(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      BountyChangedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyChangedCode], b.Title),
		subject:   "Bounty updated",
		date:      date,
	})
}

// IssuerTransferred notifies both sides of the handover.
func (p *Projector) IssuerTransferred(
	s Store,
	uid string,
	b *orm.Bounty,
	previousIssuer string,
	date time.Time,
) error {
	if err := p.notify(s, note{
		uid:       uid,
		code:      BountyTransferredCode,
		recipient: b.Issuer,
		from:      previousIssuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[BountyTransferredCode], b.Title),
		subject:   "Bounty transferred to you",
		date:      date,
	}); err != nil {
		return err
	}

	return p.notify(s, note{
		uid:          uid + "from",
		code:         BountyTransferredCode,
		recipient:    previousIssuer,
		from:         b.Issuer,
		bounty:       b,
		text:         fmt.Sprintf(templates[BountyTransferredCode], b.Title),
		subject:      "Bounty transferred",
		date:         date,
		skipActivity: true,
	})
}

// PayoutIncreased notifies the issuer of the raised payout.
func (p *Projector) PayoutIncreased(
	s Store,
	uid string,
	b *orm.Bounty,
	date time.Time,
) error {
	return p.notify(s, note{
		uid:       uid,
		code:      PayoutIncreasedCode,
		recipient: b.Issuer,
		bounty:    b,
		text:      fmt.Sprintf(templates[PayoutIncreasedCode], b.Title),
		subject:   "Payout increased",
		date:      date,
	})
}

type note struct {
	uid          string
	code         string
	recipient    string
	from         string
	bounty       *orm.Bounty
	fulfillment  *orm.Fulfillment
	text         string
	subject      string
	date         time.Time
	skipActivity bool
}

func (p *Projector) notify(s Store, n note) error {
	var fulfillmentID *uint64
	if n.fulfillment != nil {
		id := n.fulfillment.FulfillmentID
		fulfillmentID = &id
	}

	if err := s.CreateNotification(&orm.Notification{
		UID:           n.uid,
		Type:          n.code,
		Recipient:     n.recipient,
		FromUser:      n.from,
		BountyID:      n.bounty.BountyID,
		FulfillmentID: fulfillmentID,
		StringData:    n.text,
		Subject:       n.subject,
		Date:          n.date,
	}); err != nil {
		return err
	}

	if n.skipActivity {
		return nil
	}

	return s.CreateActivity(&orm.Activity{
		UID:           n.uid,
		Type:          n.code,
		User:          n.recipient,
		BountyID:      n.bounty.BountyID,
		FulfillmentID: fulfillmentID,
		Date:          n.date,
	})
}
