package orm

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is a gorm table definition represents the token registry.
// PriceUSD is the current USD rate for one whole token, refreshed by an
// external price keeper.
type Token struct {
	ID        uint64 `gorm:"primary_key"`
	Name      string
	Symbol    string `gorm:"uniqueIndex"`
	Address   string
	Decimals  uint
	PriceUSD  decimal.Decimal `gorm:"type:decimal(40,8)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
