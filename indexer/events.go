package indexer

import (
	"fmt"
	"time"

	"github.com/photon-storage/go-common/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/bounties-network/bounties-indexer/chain"
	"github.com/bounties-network/bounties-indexer/database"
	"github.com/bounties-network/bounties-indexer/database/orm"
)

// dispatch applies one decoded event through the state machine and
// projects its notifications, all on the given transaction handle.
func (e *EventProcessor) dispatch(tx *gorm.DB, ev *chain.Event) error {
	s := database.NewStore(tx)
	uid := fmt.Sprintf("%s-%d", ev.TxHash, ev.LogIndex)
	eventDate := time.Unix(ev.Timestamp, 0).UTC()

	if ev.Kind == chain.KindBountyIssued {
		b, err := e.bounties.IssueBounty(e.ctx, s, ev.Issued, ev.Timestamp)
		if err != nil {
			return errors.Wrapf(err, "apply %s for bounty %d", ev.Kind, ev.BountyID)
		}

		return e.notifier.BountyIssued(s, uid, b, eventDate)
	}

	b, err := s.GetBounty(ev.BountyID)
	if err != nil {
		return errors.Wrapf(err, "apply %s", ev.Kind)
	}

	switch ev.Kind {
	case chain.KindBountyActivated:
		b, err := e.bounties.ActivateBounty(s, b, ev.Timestamp)
		if err != nil {
			return err
		}

		return e.notifier.BountyActivated(s, uid, b, eventDate)

	case chain.KindBountyFulfilled:
		f, err := e.bounties.FulfillBounty(s, b, ev.Fulfilled, ev.Timestamp)
		if err != nil {
			return err
		}

		if f == nil {
			log.Info("duplicate fulfillment event skipped",
				"bounty", ev.BountyID,
				"fulfillment", ev.Fulfilled.FulfillmentID,
			)
			return nil
		}

		return e.notifier.BountyFulfilled(s, uid, b, f)

	case chain.KindFulfillmentUpdated:
		f, err := e.bounties.UpdateFulfillment(s, b, ev.FulfillmentU)
		if err != nil {
			return err
		}

		return e.notifier.FulfillmentUpdated(s, uid, b, f, eventDate)

	case chain.KindFulfillmentAccepted:
		f, err := e.bounties.AcceptFulfillment(e.ctx, s, b, ev.Accepted, ev.Timestamp)
		if err != nil {
			return err
		}

		if err := e.notifier.FulfillmentAccepted(s, uid, b, f); err != nil {
			return err
		}

		if b.Stage == orm.StageCompleted {
			return e.notifier.BountyCompleted(s, uid, b, eventDate)
		}

		return nil

	case chain.KindBountyKilled:
		b, err := e.bounties.KillBounty(e.ctx, s, b, ev.Timestamp)
		if err != nil {
			return err
		}

		return e.notifier.BountyKilled(s, uid, b, eventDate)

	case chain.KindContributionAdded:
		b, err := e.bounties.AddContribution(s, b, ev.Contribution, ev.Timestamp)
		if err != nil {
			return err
		}

		return e.notifier.ContributionAdded(
			s, uid, b, ev.Contribution.Contributor, eventDate)

	case chain.KindDeadlineExtended:
		b, err := e.bounties.ExtendDeadline(s, b, ev.Extended, ev.Timestamp)
		if err != nil {
			return err
		}

		return e.notifier.DeadlineExtended(s, uid, b, eventDate)

	case chain.KindBountyChanged:
		b, err := e.bounties.ChangeBounty(s, b, ev.Changed)
		if err != nil {
			return err
		}

		return e.notifier.BountyChanged(s, uid, b, eventDate)

	case chain.KindIssuerTransferred:
		b, previous, err := e.bounties.TransferIssuer(s, b, ev.Transferred)
		if err != nil {
			return err
		}

		return e.notifier.IssuerTransferred(s, uid, b, previous, eventDate)

	case chain.KindPayoutIncreased:
		b, err := e.bounties.IncreasePayout(s, b, ev.Payout)
		if err != nil {
			return err
		}

		return e.notifier.PayoutIncreased(s, uid, b, eventDate)

	default:
		return errors.Errorf("unhandled event kind %d", ev.Kind)
	}
}
