package chain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestEventValidate(t *testing.T) {
	testCases := []struct {
		name    string
		event   *Event
		wantErr bool
	}{
		{
			name: "v1 issue with issuer",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 1,
					Issuer:          "0xaa",
					Value:           decimal.Zero,
				},
			},
		},
		{
			name: "v1 issue without issuer",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 1,
				},
			},
			wantErr: true,
		},
		{
			name: "v1 token bounty without token contract",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 1,
					Issuer:          "0xaa",
					PaysTokens:      true,
				},
			},
			wantErr: true,
		},
		{
			name: "v2 issue without issuers",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 2,
				},
			},
			wantErr: true,
		},
		{
			name: "v2 token bounty without token address",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 2,
					Issuers:         []string{"0xaa"},
					TokenVersion:    20,
				},
			},
			wantErr: true,
		},
		{
			name: "unsupported contract version",
			event: &Event{
				Kind: KindBountyIssued,
				Issued: &BountyIssued{
					ContractVersion: 3,
					Issuer:          "0xaa",
				},
			},
			wantErr: true,
		},
		{
			name: "fulfill without fulfiller",
			event: &Event{
				Kind:      KindBountyFulfilled,
				Fulfilled: &BountyFulfilled{FulfillmentID: 1},
			},
			wantErr: true,
		},
		{
			name: "deadline extension to zero",
			event: &Event{
				Kind:     KindDeadlineExtended,
				Extended: &DeadlineExtended{NewDeadline: 0},
			},
			wantErr: true,
		},
		{
			name: "issuer transfer without new issuer",
			event: &Event{
				Kind:        KindIssuerTransferred,
				Transferred: &IssuerTransferred{},
			},
			wantErr: true,
		},
		{
			name: "payload missing for kind",
			event: &Event{
				Kind: KindBountyKilled,
			},
			wantErr: true,
		},
		{
			name: "kill carries an empty payload",
			event: &Event{
				Kind:   KindBountyKilled,
				Killed: &BountyKilled{},
			},
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			err := c.event.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("validate error = %v, want error %v", err, c.wantErr)
			}

			if err != nil && errors.Cause(err) != ErrValidation {
				t.Errorf("validate error cause = %v, want %v",
					errors.Cause(err), ErrValidation)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindBountyIssued.String(); got != "BountyIssued" {
		t.Errorf("kind string = %q, want BountyIssued", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("kind string = %q, want unknown", got)
	}
}
