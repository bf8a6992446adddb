package bridge

import (
	"fmt"
	"math"
	"time"

	"github.com/walletsync/blockset-go/blockset"
	"github.com/walletsync/blockset-go/pkg/safe"
)

const (
	// BlockHeightUnknown marks a transaction not yet in a block.
	BlockHeightUnknown uint64 = math.MaxUint64
	// TimestampUnknown marks an unknown timestamp (milliseconds since epoch).
	TimestampUnknown uint64 = 0
)

// BundleStatus is the closed set of transfer/transaction states the engine
// consumes, decoded from the service's status string.
type BundleStatus int

const (
	BundleStatusSubmitted BundleStatus = iota
	BundleStatusConfirmed
	BundleStatusFailed
	BundleStatusReverted
	BundleStatusRejected
)

func (s BundleStatus) String() string {
	switch s {
	case BundleStatusSubmitted:
		return "submitted"
	case BundleStatusConfirmed:
		return "confirmed"
	case BundleStatusFailed:
		return "failed"
	case BundleStatusReverted:
		return "reverted"
	case BundleStatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// decodeBundleStatus picks the payload shape purely from the tag; a string
// outside the closed set is a decode failure, never re-typed after the fact.
func decodeBundleStatus(status string) (BundleStatus, error) {
	switch status {
	case "submitted", "pending":
		return BundleStatusSubmitted, nil
	case "confirmed":
		return BundleStatusConfirmed, nil
	case "failed":
		return BundleStatusFailed, nil
	case "reverted":
		return BundleStatusReverted, nil
	case "rejected":
		return BundleStatusRejected, nil
	default:
		return 0, fmt.Errorf("unrecognized status %q", status)
	}
}

// TransactionBundle is the flat record the engine consumes for one
// transaction. Status, Raw and the two chain coordinates are always set;
// the coordinates may hold their unknown sentinels. The engine owns the
// bundle once handed over.
type TransactionBundle struct {
	Status      BundleStatus
	Raw         []byte
	Timestamp   uint64 // ms since epoch, TimestampUnknown if not known
	BlockHeight uint64 // BlockHeightUnknown until confirmed
}

// TransferBundle is the flat record the engine consumes for one transfer.
type TransferBundle struct {
	ID             string
	TransactionID  string
	Source         string // empty when unknown (e.g. coinbase)
	Target         string
	Amount         string
	CurrencyID     string
	TransferIndex  uint64
	BlockTimestamp uint64
	BlockHeight    uint64
	Meta           map[string]string
}

// FeeEstimateBundle is the engine-facing fee estimation result.
type FeeEstimateBundle struct {
	CostUnits  uint64
	Properties map[string]string
}

func badBundle(detail string) error {
	return &blockset.Error{Kind: blockset.KindBadResponse, Detail: detail}
}

// transactionBundle converts a service transaction into its engine bundle.
// Raw bytes are mandatory; queries feeding the engine always request them.
func transactionBundle(tx blockset.Transaction) (TransactionBundle, error) {
	status, err := decodeBundleStatus(tx.Status)
	if err != nil {
		return TransactionBundle{}, badBundle(fmt.Sprintf("transaction %s: %v", tx.ID, err))
	}
	if len(tx.Raw) == 0 {
		return TransactionBundle{}, badBundle(fmt.Sprintf("transaction %s: missing raw data", tx.ID))
	}

	timestamp := TimestampUnknown
	if tx.Timestamp != nil {
		ms, err := timestampMillis(*tx.Timestamp)
		if err != nil {
			return TransactionBundle{}, badBundle(fmt.Sprintf("transaction %s: %v", tx.ID, err))
		}
		timestamp = ms
	}

	blockHeight := BlockHeightUnknown
	if tx.BlockHeight != nil {
		blockHeight = *tx.BlockHeight
	}

	return TransactionBundle{
		Status:      status,
		Raw:         tx.Raw,
		Timestamp:   timestamp,
		BlockHeight: blockHeight,
	}, nil
}

// transferBundle converts one transfer, carrying the owning transaction's
// chain coordinates onto the bundle.
func transferBundle(transfer blockset.Transfer, blockTimestamp, blockHeight uint64) TransferBundle {
	bundle := TransferBundle{
		ID:             transfer.ID,
		Amount:         transfer.Amount.Value,
		CurrencyID:     transfer.Amount.CurrencyID,
		TransferIndex:  transfer.Index,
		BlockTimestamp: blockTimestamp,
		BlockHeight:    blockHeight,
		Meta:           transfer.Meta,
	}
	if transfer.TransactionID != nil {
		bundle.TransactionID = *transfer.TransactionID
	}
	if transfer.Source != nil {
		bundle.Source = *transfer.Source
	}
	if transfer.Target != nil {
		bundle.Target = *transfer.Target
	}
	return bundle
}

func timestampMillis(value string) (uint64, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return safe.Uint64(parsed.UnixMilli())
}
