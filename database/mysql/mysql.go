package mysql

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Pool defaults sized for the indexer's write pattern: one event
// transaction at a time plus the ops API's read traffic.
const (
	defaultMaxIdleConns = 10
	defaultMaxOpenConns = 50
)

// NewMySQLDB opens the bounty index database as a master/replica
// cluster. Event application and cursor advances always write the
// master; replicas serve the read-only status and stats queries.
func NewMySQLDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn(cfg.Master)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.LogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open bounty index master")
	}

	replicas := make([]gorm.Dialector, 0, len(cfg.Slaves))
	for _, replica := range cfg.Slaves {
		replicas = append(replicas, mysql.Open(dsn(replica)))
	}

	maxIdle := cfg.ConnCfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}

	maxOpen := cfg.ConnCfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Sources:  []gorm.Dialector{mysql.Open(dsn(cfg.Master))},
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetConnMaxIdleTime(time.Hour).
		SetConnMaxLifetime(24 * time.Hour).
		SetMaxIdleConns(maxIdle).
		SetMaxOpenConns(maxOpen)
	if err := db.Use(resolver); err != nil {
		return nil, errors.Wrap(err, "register replica resolver")
	}

	return db, nil
}

// dsn renders one connection string. parseTime is required so gorm
// scans DATETIME columns into time.Time for deadline comparisons, and
// loc=UTC keeps them aligned with the UTC event timestamps.
func dsn(c connection) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}
