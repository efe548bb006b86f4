package indexer

import (
	"context"
	"time"

	"github.com/photon-storage/go-common/log"
	"gorm.io/gorm"

	"github.com/bounties-network/bounties-indexer/bounties"
	"github.com/bounties-network/bounties-indexer/chain"
	"github.com/bounties-network/bounties-indexer/database/orm"
	"github.com/bounties-network/bounties-indexer/notifications"
)

// blockCompleteLogIndex marks a cursor whose block has been applied in
// full, so the next pass resumes at the following block. Any other log
// index means the block was interrupted mid-way and must be refetched.
const blockCompleteLogIndex = ^uint(0)

// EventProcessor is the processor for synchronizing bounty contract
// events into the off-chain state store. Events for one bounty apply in
// chain emission order; each event applies inside its own database
// transaction together with the cursor advance.
type EventProcessor struct {
	ctx             context.Context
	refreshInterval uint64
	batchBlocks     uint64
	db              *gorm.DB
	chain           *chain.Client
	bounties        *bounties.Client
	notifier        *notifications.Projector
	quit            chan struct{}
}

// NewEventProcessor returns the new instance of EventProcessor.
func NewEventProcessor(
	ctx context.Context,
	refreshInterval uint64,
	batchBlocks uint64,
	db *gorm.DB,
	chainClient *chain.Client,
	bountyClient *bounties.Client,
	notifier *notifications.Projector,
) *EventProcessor {
	return &EventProcessor{
		ctx:             ctx,
		refreshInterval: refreshInterval,
		batchBlocks:     batchBlocks,
		db:              db,
		chain:           chainClient,
		bounties:        bountyClient,
		notifier:        notifier,
		quit:            make(chan struct{}),
	}
}

// Run executing the timing task of processing contract events.
func (e *EventProcessor) Run() {
	ticker := time.NewTicker(time.Duration(e.refreshInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-e.quit:
			return

		case <-e.ctx.Done():
			return

		case <-ticker.C:
		}

		head, err := e.chain.HeadBlock(e.ctx)
		if err != nil {
			log.Error("request head block from ethereum node failed", "error", err)
			continue
		}

		cursor, err := currentContractStatus(e.db)
		if err != nil {
			log.Error("fail query contract status", "error", err)
			continue
		}

		if resumeBlock(cursor) > head {
			log.Info("local block is chain head", "block", cursor.LastBlock)
			continue
		}

		if err := e.processRange(cursor, head); err != nil {
			log.Error("indexer fail on sync contract events", "error", err)
		}
	}
}

// Stop exits event processor
func (e *EventProcessor) Stop() {
	close(e.quit)
}

func (e *EventProcessor) processRange(cursor *orm.ContractStatus, head uint64) error {
	from := resumeBlock(cursor)
	for from <= head {
		to := from + e.batchBlocks - 1
		if to > head {
			to = head
		}

		events, err := e.chain.Events(e.ctx, from, to)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if appliedBefore(cursor, ev) {
				continue
			}

			if err := e.applyEvent(ev); err != nil {
				return err
			}
		}

		if err := updateContractStatus(e.db, to, blockCompleteLogIndex); err != nil {
			return err
		}

		from = to + 1
	}

	return nil
}

// resumeBlock returns the first block the next fetch must cover. A
// cursor interrupted mid-block points back at its own block so the
// unapplied tail of that block is refetched.
func resumeBlock(cursor *orm.ContractStatus) uint64 {
	if cursor.LastLogIndex == blockCompleteLogIndex {
		return cursor.LastBlock + 1
	}

	return cursor.LastBlock
}

// appliedBefore reports whether an earlier pass already committed the
// event, which happens when a refetched block carries events at or
// below the interrupted cursor position.
func appliedBefore(cursor *orm.ContractStatus, ev *chain.Event) bool {
	if ev.BlockNumber != cursor.LastBlock {
		return ev.BlockNumber < cursor.LastBlock
	}

	if cursor.LastLogIndex == blockCompleteLogIndex {
		return true
	}

	return ev.LogIndex <= cursor.LastLogIndex
}

func (e *EventProcessor) applyEvent(ev *chain.Event) error {
	log.Debug("applying contract event",
		"kind", ev.Kind.String(),
		"bounty", ev.BountyID,
		"block", ev.BlockNumber,
		"log", ev.LogIndex,
	)

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.dispatch(tx, ev); err != nil {
			return err
		}

		return updateContractStatus(tx, ev.BlockNumber, ev.LogIndex)
	})
}

func currentContractStatus(db *gorm.DB) (*orm.ContractStatus, error) {
	cs := &orm.ContractStatus{}
	if err := db.Model(cs).First(cs).Error; err != nil {
		return nil, err
	}

	return cs, nil
}

func updateContractStatus(db *gorm.DB, block uint64, logIndex uint) error {
	return db.Model(&orm.ContractStatus{}).Where("id = 1").Updates(
		map[string]interface{}{
			"last_block":     block,
			"last_log_index": logIndex,
		}).Error
}
