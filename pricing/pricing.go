package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/photon-storage/go-common/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bounties-network/bounties-indexer/database/orm"
)

const usdScale = 8

// TokenStore looks up a token registry entry by symbol. A missing token
// yields (nil, nil).
type TokenStore interface {
	TokenBySymbol(symbol string) (*orm.Token, error)
}

// Gateway resolves the USD value of token amounts, either at the current
// registry rate or at a historical timestamp through an external oracle.
type Gateway struct {
	tokens    TokenStore
	oracleURL string
}

// NewGateway returns a gateway reading current rates from tokens and
// historical rates from the price oracle at oracleURL.
func NewGateway(tokens TokenStore, oracleURL string) *Gateway {
	return &Gateway{
		tokens:    tokens,
		oracleURL: oracleURL,
	}
}

// Current computes the USD value of amount at the registry rate. An
// unknown symbol prices at zero with no registry reference; the caller is
// never failed by a missing token.
func (g *Gateway) Current(
	symbol string,
	decimals uint,
	amount decimal.Decimal,
) (decimal.Decimal, *orm.Token, error) {
	token, err := g.tokens.TokenBySymbol(symbol)
	if err != nil {
		return decimal.Zero, nil, errors.Wrap(err, "query token registry")
	}

	if token == nil {
		return decimal.Zero, nil, nil
	}

	return usdValue(amount, decimals, token.PriceUSD), token, nil
}

// Historical computes the USD value of amount at the oracle rate for the
// given unix timestamp and returns the value together with the rate used.
// Oracle transport failures and oracle-reported errors fall back to the
// current registry rate.
func (g *Gateway) Historical(
	ctx context.Context,
	symbol string,
	decimals uint,
	amount decimal.Decimal,
	timestamp int64,
) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := g.historicalRate(ctx, symbol, timestamp)
	if err != nil {
		log.Warn("historical price lookup failed, using current rate",
			"symbol", symbol,
			"timestamp", timestamp,
			"error", err,
		)

		usd, token, err := g.Current(symbol, decimals, amount)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		rate := decimal.Zero
		if token != nil {
			rate = token.PriceUSD
		}

		return usd, rate, nil
	}

	return usdValue(amount, decimals, rate), rate, nil
}

func (g *Gateway) historicalRate(
	ctx context.Context,
	symbol string,
	timestamp int64,
) (decimal.Decimal, error) {
	url := fmt.Sprintf(
		"%s/data/pricehistorical?fsym=%s&tsyms=USD&ts=%d&extraParams=bountiesnetwork",
		g.oracleURL,
		symbol,
		timestamp,
	)

	body, err := httpGet(ctx, url)
	if err != nil {
		return decimal.Zero, err
	}

	envelope := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return decimal.Zero, errors.Wrap(err, "decode oracle response")
	}

	if raw, ok := envelope["Response"]; ok {
		status := ""
		if err := json.Unmarshal(raw, &status); err == nil && status == "Error" {
			return decimal.Zero, errors.New("oracle reported error response")
		}
	}

	raw, ok := envelope[symbol]
	if !ok {
		return decimal.Zero, errors.Errorf("oracle response missing symbol %s", symbol)
	}

	rates := map[string]decimal.Decimal{}
	if err := json.Unmarshal(raw, &rates); err != nil {
		return decimal.Zero, errors.Wrap(err, "decode oracle rates")
	}

	rate, ok := rates["USD"]
	if !ok {
		return decimal.Zero, errors.New("oracle response missing USD rate")
	}

	return rate, nil
}

// usdValue converts a smallest-unit token amount to its USD value,
// (amount / 10^decimals) * rate, rounded half-even to 8 fractional digits.
// The shift is exact so repeated captures never accumulate drift.
func usdValue(amount decimal.Decimal, decimals uint, rate decimal.Decimal) decimal.Decimal {
	return amount.Shift(-int32(decimals)).Mul(rate).RoundBank(usdScale)
}

func httpGet(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("oracle responded with status %d", resp.StatusCode)
	}

	return ioutil.ReadAll(resp.Body)
}
