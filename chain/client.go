package chain

import (
	"context"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/photon-storage/go-common/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// bountiesABIJSON describes the v1 StandardBounties surface this indexer
// decodes: every lifecycle event plus the calldata of methods whose inputs
// are not echoed in the event itself (content hashes, issue inputs,
// partial-change fields).
const bountiesABIJSON = `[
{"type":"event","anonymous":false,"name":"BountyIssued","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"BountyActivated","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"issuer","type":"address"}]},
{"type":"event","anonymous":false,"name":"BountyFulfilled","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"fulfiller","type":"address"},{"indexed":false,"name":"fulfillmentId","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"FulfillmentUpdated","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"fulfillmentId","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"FulfillmentAccepted","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"fulfiller","type":"address"},{"indexed":false,"name":"fulfillmentId","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"BountyKilled","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"issuer","type":"address"}]},
{"type":"event","anonymous":false,"name":"ContributionAdded","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"contributor","type":"address"},{"indexed":false,"name":"value","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"DeadlineExtended","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"newDeadline","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"BountyChanged","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"}]},
{"type":"event","anonymous":false,"name":"IssuerTransferred","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"newIssuer","type":"address"}]},
{"type":"event","anonymous":false,"name":"PayoutIncreased","inputs":[{"indexed":false,"name":"bountyId","type":"uint256"},{"indexed":false,"name":"newFulfillmentAmount","type":"uint256"}]},
{"type":"function","name":"issueBounty","inputs":[{"name":"issuer","type":"address"},{"name":"deadline","type":"uint256"},{"name":"data","type":"string"},{"name":"fulfillmentAmount","type":"uint256"},{"name":"arbiter","type":"address"},{"name":"paysTokens","type":"bool"},{"name":"tokenContract","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"issueAndActivateBounty","inputs":[{"name":"issuer","type":"address"},{"name":"deadline","type":"uint256"},{"name":"data","type":"string"},{"name":"fulfillmentAmount","type":"uint256"},{"name":"arbiter","type":"address"},{"name":"paysTokens","type":"bool"},{"name":"tokenContract","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"activateBounty","inputs":[{"name":"bountyId","type":"uint256"},{"name":"value","type":"uint256"}],"outputs":[]},
{"type":"function","name":"fulfillBounty","inputs":[{"name":"bountyId","type":"uint256"},{"name":"data","type":"string"}],"outputs":[]},
{"type":"function","name":"updateFulfillment","inputs":[{"name":"bountyId","type":"uint256"},{"name":"fulfillmentId","type":"uint256"},{"name":"data","type":"string"}],"outputs":[]},
{"type":"function","name":"acceptFulfillment","inputs":[{"name":"bountyId","type":"uint256"},{"name":"fulfillmentId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"killBounty","inputs":[{"name":"bountyId","type":"uint256"}],"outputs":[]},
{"type":"function","name":"contribute","inputs":[{"name":"bountyId","type":"uint256"},{"name":"value","type":"uint256"}],"outputs":[]},
{"type":"function","name":"extendDeadline","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newDeadline","type":"uint256"}],"outputs":[]},
{"type":"function","name":"changeBountyDeadline","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newDeadline","type":"uint256"}],"outputs":[]},
{"type":"function","name":"changeBountyData","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newData","type":"string"}],"outputs":[]},
{"type":"function","name":"changeBountyFulfillmentAmount","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newFulfillmentAmount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"changeBountyArbiter","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newArbiter","type":"address"}],"outputs":[]},
{"type":"function","name":"transferIssuer","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newIssuer","type":"address"}],"outputs":[]},
{"type":"function","name":"increasePayout","inputs":[{"name":"bountyId","type":"uint256"},{"name":"newFulfillmentAmount","type":"uint256"},{"name":"value","type":"uint256"}],"outputs":[]}
]`

// Client fetches and decodes bounty contract events from an ethereum
// node. Decoding is limited to the v1 contract wire format; v2 payloads
// reach the state machine through the same typed events from a separate
// ingestion path.
type Client struct {
	eth             *ethclient.Client
	address         common.Address
	contractVersion uint
	abi             abi.ABI
}

// NewClient dials the ethereum rpc endpoint and prepares the contract
// decoder for the deployment at contractAddr.
func NewClient(rpcURL, contractAddr string, contractVersion uint) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial ethereum rpc")
	}

	parsed, err := abi.JSON(strings.NewReader(bountiesABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse bounties abi")
	}

	return &Client{
		eth:             eth,
		address:         common.HexToAddress(contractAddr),
		contractVersion: contractVersion,
		abi:             parsed,
	}, nil
}

// Eth exposes the underlying rpc client for read-only contract calls.
func (c *Client) Eth() *ethclient.Client {
	return c.eth
}

// HeadBlock returns the current chain head number.
func (c *Client) HeadBlock(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// Events fetches the contract logs in [from, to] and decodes them into
// typed events ordered by (block, log index). Unknown event signatures
// are skipped.
func (c *Client) Events(ctx context.Context, from, to uint64) ([]*Event, error) {
	logs, err := c.eth.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{c.address},
	})
	if err != nil {
		return nil, errors.Wrap(err, "filter contract logs")
	}

	blockTimes := map[common.Hash]int64{}
	events := make([]*Event, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}

		ev, err := c.decodeLog(ctx, lg, blockTimes)
		if err != nil {
			return nil, err
		}

		if ev == nil {
			continue
		}

		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}

		return events[i].LogIndex < events[j].LogIndex
	})

	return validEvents(events), nil
}

// validEvents drops events whose payload fails validation. A malformed
// payload is permanent: retrying the fetch reproduces it, so it is
// surfaced with its chain identity and skipped rather than allowed to
// wedge the batch.
func validEvents(events []*Event) []*Event {
	kept := events[:0]
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			log.Error("dropping malformed contract event",
				"kind", ev.Kind.String(),
				"bounty", ev.BountyID,
				"block", ev.BlockNumber,
				"log", ev.LogIndex,
				"error", err,
			)
			continue
		}

		kept = append(kept, ev)
	}

	return kept
}

func (c *Client) decodeLog(
	ctx context.Context,
	lg types.Log,
	blockTimes map[common.Hash]int64,
) (*Event, error) {
	if len(lg.Topics) == 0 {
		return nil, nil
	}

	eventDef, err := c.abi.EventByID(lg.Topics[0])
	if err != nil {
		log.Debug("skipping unknown contract event",
			"topic", lg.Topics[0].Hex(),
			"block", lg.BlockNumber,
		)
		return nil, nil
	}

	vals := map[string]interface{}{}
	if err := c.abi.UnpackIntoMap(vals, eventDef.Name, lg.Data); err != nil {
		return nil, errors.Wrapf(err, "unpack %s log", eventDef.Name)
	}

	timestamp, err := c.blockTime(ctx, lg.BlockHash, blockTimes)
	if err != nil {
		return nil, err
	}

	ev := &Event{
		BountyID:    u64(vals, "bountyId"),
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash.Hex(),
		LogIndex:    lg.Index,
		Timestamp:   timestamp,
	}

	switch eventDef.Name {
	case "BountyIssued":
		_, inputs, err := c.methodInputs(ctx, lg.TxHash)
		if err != nil {
			return nil, err
		}

		ev.Kind = KindBountyIssued
		ev.Issued = &BountyIssued{
			BountyID:          ev.BountyID,
			OriginalID:        ev.BountyID,
			ContractVersion:   c.contractVersion,
			Issuer:            addrStr(inputs, "issuer"),
			Deadline:          i64(inputs, "deadline"),
			Data:              strArg(inputs, "data"),
			FulfillmentAmount: dec(inputs, "fulfillmentAmount"),
			Arbiter:           addrStr(inputs, "arbiter"),
			PaysTokens:        boolArg(inputs, "paysTokens"),
			TokenContract:     addrStr(inputs, "tokenContract"),
			Value:             dec(inputs, "value"),
		}

	case "BountyActivated":
		ev.Kind = KindBountyActivated
		ev.Activated = &BountyActivated{Issuer: addrStr(vals, "issuer")}

	case "BountyFulfilled":
		_, inputs, err := c.methodInputs(ctx, lg.TxHash)
		if err != nil {
			return nil, err
		}

		ev.Kind = KindBountyFulfilled
		ev.Fulfilled = &BountyFulfilled{
			FulfillmentID: u64(vals, "fulfillmentId"),
			Fulfiller:     addrStr(vals, "fulfiller"),
			Data:          strArg(inputs, "data"),
		}

	case "FulfillmentUpdated":
		_, inputs, err := c.methodInputs(ctx, lg.TxHash)
		if err != nil {
			return nil, err
		}

		ev.Kind = KindFulfillmentUpdated
		ev.FulfillmentU = &FulfillmentUpdated{
			FulfillmentID: u64(vals, "fulfillmentId"),
			Data:          strArg(inputs, "data"),
		}

	case "FulfillmentAccepted":
		ev.Kind = KindFulfillmentAccepted
		ev.Accepted = &FulfillmentAccepted{
			FulfillmentID: u64(vals, "fulfillmentId"),
		}

	case "BountyKilled":
		ev.Kind = KindBountyKilled
		ev.Killed = &BountyKilled{}

	case "ContributionAdded":
		ev.Kind = KindContributionAdded
		ev.Contribution = &ContributionAdded{
			Contributor: addrStr(vals, "contributor"),
			Value:       dec(vals, "value"),
		}

	case "DeadlineExtended":
		ev.Kind = KindDeadlineExtended
		ev.Extended = &DeadlineExtended{NewDeadline: i64(vals, "newDeadline")}

	case "BountyChanged":
		method, inputs, err := c.methodInputs(ctx, lg.TxHash)
		if err != nil {
			return nil, err
		}

		changed := &BountyChanged{}
		switch method {
		case "changeBountyDeadline":
			changed.NewDeadline = i64(inputs, "newDeadline")
		case "changeBountyData":
			changed.NewData = strArg(inputs, "newData")
		case "changeBountyFulfillmentAmount":
			amount := dec(inputs, "newFulfillmentAmount")
			changed.NewFulfillmentAmount = &amount
		case "changeBountyArbiter":
			changed.NewArbiter = addrStr(inputs, "newArbiter")
		}

		ev.Kind = KindBountyChanged
		ev.Changed = changed

	case "IssuerTransferred":
		ev.Kind = KindIssuerTransferred
		ev.Transferred = &IssuerTransferred{NewIssuer: addrStr(vals, "newIssuer")}

	case "PayoutIncreased":
		_, inputs, err := c.methodInputs(ctx, lg.TxHash)
		if err != nil {
			return nil, err
		}

		payout := &PayoutIncreased{
			NewFulfillmentAmount: dec(vals, "newFulfillmentAmount"),
		}
		if _, ok := inputs["value"]; ok {
			value := dec(inputs, "value")
			payout.Value = &value
		}

		ev.Kind = KindPayoutIncreased
		ev.Payout = payout

	default:
		return nil, nil
	}

	return ev, nil
}

// methodInputs unpacks the calldata of the transaction that emitted a
// log, for events that do not echo their inputs.
func (c *Client) methodInputs(
	ctx context.Context,
	txHash common.Hash,
) (string, map[string]interface{}, error) {
	tx, _, err := c.eth.TransactionByHash(ctx, txHash)
	if err != nil {
		return "", nil, errors.Wrapf(err, "fetch transaction %s", txHash.Hex())
	}

	data := tx.Data()
	if len(data) < 4 {
		return "", nil, errors.Errorf("transaction %s carries no calldata", txHash.Hex())
	}

	method, err := c.abi.MethodById(data[:4])
	if err != nil {
		return "", nil, errors.Wrapf(err, "unknown method on transaction %s", txHash.Hex())
	}

	inputs := map[string]interface{}{}
	if err := method.Inputs.UnpackIntoMap(inputs, data[4:]); err != nil {
		return "", nil, errors.Wrapf(err, "unpack %s calldata", method.Name)
	}

	return method.Name, inputs, nil
}

func (c *Client) blockTime(
	ctx context.Context,
	blockHash common.Hash,
	cache map[common.Hash]int64,
) (int64, error) {
	if t, ok := cache[blockHash]; ok {
		return t, nil
	}

	header, err := c.eth.HeaderByHash(ctx, blockHash)
	if err != nil {
		return 0, errors.Wrapf(err, "fetch header %s", blockHash.Hex())
	}

	t := int64(header.Time)
	cache[blockHash] = t
	return t, nil
}

func u64(vals map[string]interface{}, key string) uint64 {
	b, ok := vals[key].(*big.Int)
	if !ok {
		return 0
	}

	return b.Uint64()
}

func i64(vals map[string]interface{}, key string) int64 {
	b, ok := vals[key].(*big.Int)
	if !ok {
		return 0
	}

	return b.Int64()
}

func dec(vals map[string]interface{}, key string) decimal.Decimal {
	b, ok := vals[key].(*big.Int)
	if !ok {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(b, 0)
}

func addrStr(vals map[string]interface{}, key string) string {
	a, ok := vals[key].(common.Address)
	if !ok {
		return ""
	}

	return strings.ToLower(a.Hex())
}

func strArg(vals map[string]interface{}, key string) string {
	s, _ := vals[key].(string)
	return s
}

func boolArg(vals map[string]interface{}, key string) bool {
	b, _ := vals[key].(bool)
	return b
}
