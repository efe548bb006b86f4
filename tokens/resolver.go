package tokens

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Two incompatible token standards are observed in the wild: the common
// ERC20 string-symbol interface and the legacy DSToken interface where
// symbol is a NUL-padded bytes32. Decoding strategies are tried in order
// and the first success wins.
const (
	erc20ABIJSON = `[
		{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
		{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"}
	]`

	dsTokenABIJSON = `[
		{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"bytes32"}],"type":"function"},
		{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint256"}],"type":"function"}
	]`

	nativeSymbol   = "ETH"
	nativeDecimals = uint(18)
)

// Info is the resolved token denomination of a bounty.
type Info struct {
	Symbol   string
	Decimals uint
}

type strategy struct {
	name string
	abi  abi.ABI
	read func(ctx context.Context, c *bind.BoundContract) (Info, error)
}

// Resolver resolves token symbol and decimals from on-chain contracts.
type Resolver struct {
	caller     bind.ContractCaller
	strategies []strategy
}

// NewResolver returns a resolver performing read-only contract calls
// through caller.
func NewResolver(caller bind.ContractCaller) (*Resolver, error) {
	erc20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse erc20 abi")
	}

	dsToken, err := abi.JSON(strings.NewReader(dsTokenABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse dstoken abi")
	}

	return &Resolver{
		caller: caller,
		strategies: []strategy{
			{name: "erc20", abi: erc20, read: readERC20},
			{name: "dstoken", abi: dsToken, read: readDSToken},
		},
	}, nil
}

// Resolve resolves the paying token of a v1 bounty. Bounties paying the
// native base asset never touch the chain.
func (r *Resolver) Resolve(
	ctx context.Context,
	paysTokens bool,
	contract string,
) (Info, error) {
	if !paysTokens {
		return Info{Symbol: nativeSymbol, Decimals: nativeDecimals}, nil
	}

	return r.query(ctx, contract)
}

// ResolveV2 resolves the paying token of a v2 bounty, keyed by the token
// version emitted with the issue event. Version zero is the native asset.
func (r *Resolver) ResolveV2(
	ctx context.Context,
	tokenVersion int64,
	contract string,
) (Info, error) {
	if tokenVersion == 0 {
		return Info{Symbol: nativeSymbol, Decimals: nativeDecimals}, nil
	}

	return r.query(ctx, contract)
}

func (r *Resolver) query(ctx context.Context, contract string) (Info, error) {
	if !common.IsHexAddress(contract) {
		return Info{}, errors.Errorf("invalid token contract address %q", contract)
	}

	addr := common.HexToAddress(contract)
	var lastErr error
	for _, s := range r.strategies {
		bound := bind.NewBoundContract(addr, s.abi, r.caller, nil, nil)
		info, err := s.read(ctx, bound)
		if err == nil {
			return info, nil
		}

		lastErr = errors.Wrapf(err, "%s strategy", s.name)
	}

	return Info{}, errors.Wrapf(lastErr, "resolve token %s", contract)
}

func readERC20(ctx context.Context, c *bind.BoundContract) (Info, error) {
	opts := &bind.CallOpts{Context: ctx}

	var symOut []interface{}
	if err := c.Call(opts, &symOut, "symbol"); err != nil {
		return Info{}, err
	}

	symbol, ok := symOut[0].(string)
	if !ok {
		return Info{}, errors.New("symbol is not a string")
	}

	var decOut []interface{}
	if err := c.Call(opts, &decOut, "decimals"); err != nil {
		return Info{}, err
	}

	decimals, ok := decOut[0].(uint8)
	if !ok {
		return Info{}, errors.New("decimals is not a uint8")
	}

	return Info{Symbol: symbol, Decimals: uint(decimals)}, nil
}

func readDSToken(ctx context.Context, c *bind.BoundContract) (Info, error) {
	opts := &bind.CallOpts{Context: ctx}

	var symOut []interface{}
	if err := c.Call(opts, &symOut, "symbol"); err != nil {
		return Info{}, err
	}

	raw, ok := symOut[0].([32]byte)
	if !ok {
		return Info{}, errors.New("symbol is not a bytes32")
	}

	// DSToken pads unused symbol chars with NUL.
	symbol := strings.TrimRight(string(raw[:]), "\x00")

	var decOut []interface{}
	if err := c.Call(opts, &decOut, "decimals"); err != nil {
		return Info{}, err
	}

	decimals, ok := decOut[0].(*big.Int)
	if !ok {
		return Info{}, errors.New("decimals is not a uint256")
	}

	return Info{Symbol: symbol, Decimals: uint(decimals.Uint64())}, nil
}
