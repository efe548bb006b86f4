package notifications

// Notification and activity type codes shared with the product data
// model.
const (
	BountyIssuedCode        = "BIS"
	BountyActivatedCode     = "BAC"
	BountyKilledCode        = "BKI"
	BountyCompletedCode     = "BCO"
	ContributionAddedCode   = "BCA"
	DeadlineExtendedCode    = "BDE"
	BountyTransferredCode   = "BTR"
	PayoutIncreasedCode     = "BPI"
	BountyChangedCode       = "BCH"
	FulfillmentCreatedCode  = "FCR"
	FulfillmentUpdatedCode  = "FUP"
	FulfillmentAcceptedCode = "FAC"
)

var templates = map[string]string{
	BountyIssuedCode:        "You issued a new bounty: %s",
	BountyActivatedCode:     "Your bounty is now active: %s",
	BountyCompletedCode:     "Your bounty was completed: %s",
	BountyKilledCode:        "You cancelled your bounty: %s",
	ContributionAddedCode:   "A contribution was added to the bounty: %s",
	DeadlineExtendedCode:    "The deadline was extended for the bounty: %s",
	BountyTransferredCode:   "A bounty was transferred to you: %s",
	PayoutIncreasedCode:     "The payout increased for the bounty: %s",
	BountyChangedCode:       "Your bounty was updated: %s",
	FulfillmentCreatedCode:  "You submitted a fulfillment for the bounty: %s",
	"FCRissuer":             "A new fulfillment was submitted for your bounty: %s",
	FulfillmentUpdatedCode:  "A fulfillment was updated on your bounty: %s",
	FulfillmentAcceptedCode: "Your submission was accepted for the bounty: %s",
	"FACissuer":             "You accepted a submission on your bounty: %s",
}
