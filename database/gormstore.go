package database

import (
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/bounties-network/bounties-indexer/bounties"
	"github.com/bounties-network/bounties-indexer/database/orm"
)

const duplicateEntryErrNo = 1062

// Store is the gorm implementation of the state machine persistence
// surface. Bind it to a transaction handle so one event applies as one
// atomic unit.
type Store struct {
	db *gorm.DB
}

// NewStore returns a store bound to db, which may be a transaction.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetBounty loads a bounty by its on-chain id.
func (s *Store) GetBounty(bountyID uint64) (*orm.Bounty, error) {
	b := &orm.Bounty{}
	err := s.db.Model(&orm.Bounty{}).Where("id = ?", bountyID).First(b).Error
	switch err {
	case gorm.ErrRecordNotFound:
		return nil, errors.Wrapf(bounties.ErrBountyNotFound, "bounty %d", bountyID)

	case nil:
		return b, nil

	default:
		return nil, err
	}
}

// CreateBounty inserts a new bounty row.
func (s *Store) CreateBounty(b *orm.Bounty) error {
	return s.db.Model(&orm.Bounty{}).Create(b).Error
}

// SaveBounty persists all columns of an existing bounty row.
func (s *Store) SaveBounty(b *orm.Bounty) error {
	return s.db.Save(b).Error
}

// GetFulfillment loads a fulfillment by its composite identity.
func (s *Store) GetFulfillment(
	bountyID uint64,
	fulfillmentID uint64,
) (*orm.Fulfillment, error) {
	f := &orm.Fulfillment{}
	err := s.db.Model(&orm.Fulfillment{}).
		Where("bounty_id = ? AND fulfillment_id = ?", bountyID, fulfillmentID).
		First(f).
		Error
	switch err {
	case gorm.ErrRecordNotFound:
		return nil, errors.Wrapf(
			bounties.ErrFulfillmentNotFound,
			"bounty %d fulfillment %d",
			bountyID,
			fulfillmentID,
		)

	case nil:
		return f, nil

	default:
		return nil, err
	}
}

// FulfillmentExists reports whether the composite identity is taken.
func (s *Store) FulfillmentExists(
	bountyID uint64,
	fulfillmentID uint64,
) (bool, error) {
	count := int64(0)
	if err := s.db.Model(&orm.Fulfillment{}).
		Where("bounty_id = ? AND fulfillment_id = ?", bountyID, fulfillmentID).
		Count(&count).
		Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateFulfillment inserts a fulfillment row. The unique index on
// (bounty_id, fulfillment_id) turns a concurrent duplicate delivery into
// ErrDuplicateFulfillment instead of a second row.
func (s *Store) CreateFulfillment(f *orm.Fulfillment) error {
	err := s.db.Model(&orm.Fulfillment{}).Create(f).Error
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrNo {
		return bounties.ErrDuplicateFulfillment
	}

	return err
}

// SaveFulfillment persists all columns of an existing fulfillment row.
func (s *Store) SaveFulfillment(f *orm.Fulfillment) error {
	return s.db.Save(f).Error
}

// HasAcceptedFulfillment reports whether the bounty paid out at least
// once.
func (s *Store) HasAcceptedFulfillment(bountyID uint64) (bool, error) {
	count := int64(0)
	if err := s.db.Model(&orm.Fulfillment{}).
		Where("bounty_id = ? AND accepted = ?", bountyID, true).
		Count(&count).
		Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// AppendBountyState appends an immutable audit snapshot row.
func (s *Store) AppendBountyState(st *orm.BountyState) error {
	return s.db.Model(&orm.BountyState{}).Create(st).Error
}

// MarkDraftOnChain flags the draft placeholder matching uid as indexed.
func (s *Store) MarkDraftOnChain(uid string) error {
	return s.db.Model(&orm.DraftBounty{}).
		Where("uid = ?", uid).
		Update("on_chain", true).
		Error
}

// TokenBySymbol looks up the token registry; a missing symbol is not an
// error.
func (s *Store) TokenBySymbol(symbol string) (*orm.Token, error) {
	t := &orm.Token{}
	err := s.db.Model(&orm.Token{}).Where("symbol = ?", symbol).First(t).Error
	switch err {
	case gorm.ErrRecordNotFound:
		return nil, nil

	case nil:
		return t, nil

	default:
		return nil, err
	}
}

// CreateNotification inserts a notification row unless its dedupe uid is
// already present.
func (s *Store) CreateNotification(n *orm.Notification) error {
	return s.db.Model(&orm.Notification{}).
		Where(&orm.Notification{UID: n.UID}).
		FirstOrCreate(n).
		Error
}

// CreateActivity appends an activity feed row unless its dedupe uid is
// already present.
func (s *Store) CreateActivity(a *orm.Activity) error {
	return s.db.Model(&orm.Activity{}).
		Where(&orm.Activity{UID: a.UID}).
		FirstOrCreate(a).
		Error
}
