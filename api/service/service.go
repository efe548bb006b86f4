package service

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bounties-network/bounties-indexer/database/orm"
)

// Service defines an instance of service that handles operational
// status requests.
type Service struct {
	db *gorm.DB
}

// New creates a new service instance.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

type pingResp struct {
	Pong string `json:"pong"`
}

// Ping answers liveness probes.
func (s *Service) Ping(_ *gin.Context) (interface{}, error) {
	return &pingResp{Pong: "pong"}, nil
}

type chainStatusResp struct {
	ContractAddress string `json:"contract_address"`
	ContractVersion uint   `json:"contract_version"`
	LastBlock       uint64 `json:"last_block"`
	LastLogIndex    uint   `json:"last_log_index"`
}

// ChainStatus reports the ingestion cursor position.
func (s *Service) ChainStatus(_ *gin.Context) (interface{}, error) {
	cs := &orm.ContractStatus{}
	if err := s.db.Model(cs).First(cs).Error; err != nil {
		return nil, errCursorNotReady
	}

	return &chainStatusResp{
		ContractAddress: cs.ContractAddress,
		ContractVersion: cs.ContractVersion,
		LastBlock:       cs.LastBlock,
		LastLogIndex:    cs.LastLogIndex,
	}, nil
}

type statsResp struct {
	BountiesByStage map[string]int64 `json:"bounties_by_stage"`
	Fulfillments    int64            `json:"fulfillments"`
	Notifications   int64            `json:"notifications"`
}

type stageCount struct {
	Stage orm.Stage
	Count int64
}

// Stats reports projection row counts for monitoring dashboards.
func (s *Service) Stats(_ *gin.Context) (interface{}, error) {
	var counts []stageCount
	if err := s.db.Model(&orm.Bounty{}).
		Select("stage, count(*) as count").
		Group("stage").
		Scan(&counts).
		Error; err != nil {
		return nil, errSystem
	}

	byStage := map[string]int64{}
	for _, c := range counts {
		byStage[c.Stage.String()] = c.Count
	}

	fulfillments := int64(0)
	if err := s.db.Model(&orm.Fulfillment{}).
		Count(&fulfillments).
		Error; err != nil {
		return nil, errSystem
	}

	notifs := int64(0)
	if err := s.db.Model(&orm.Notification{}).
		Count(&notifs).
		Error; err != nil {
		return nil, errSystem
	}

	return &statsResp{
		BountiesByStage: byStage,
		Fulfillments:    fulfillments,
		Notifications:   notifs,
	}, nil
}
