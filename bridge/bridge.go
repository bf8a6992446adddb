// Package bridge connects a callback-driven synchronization engine to the
// remote data service. The engine issues requests identified by an opaque
// token; the bridge performs the HTTP work through blockset.Client and
// announces exactly one completion per token back through the Listener.
//
// The bridge never retries and never cancels: a token always receives its
// completion eventually, and any timeout policy belongs to the caller, who
// must treat a late completion as a no-op. Paginated operations follow
// server next links to the end before announcing; a server that never
// terminates pagination stalls that operation.
package bridge

import (
	"go.uber.org/zap"

	"github.com/walletsync/blockset-go/blockset"
)

// Bridge is the façade the engine calls to fetch chain data.
type Bridge struct {
	client   SystemClient
	listener Listener
	logger   *zap.Logger
}

// NewBridge wires client and listener together. logger may be nil.
func NewBridge(client SystemClient, listener Listener, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{client: client, listener: listener, logger: logger}
}

type blockNumber struct {
	height uint64
	hash   string
}

// GetBlockNumber announces the verified block height of a blockchain.
func (b *Bridge) GetBlockNumber(token Token, blockchainID string) {
	cb := NewCallback(token, b.logger, func(tok Token, value blockNumber, err error) {
		b.listener.AnnounceBlockNumber(tok, value.height, value.hash, err)
	})
	b.client.GetBlockchain(blockchainID, func(chain blockset.Blockchain, err error) {
		if err != nil {
			cb.Announce(blockNumber{height: BlockHeightUnknown}, err)
			return
		}
		value := blockNumber{height: BlockHeightUnknown}
		if chain.VerifiedHeight != nil {
			value.height = *chain.VerifiedHeight
		}
		if chain.VerifiedBlockHash != nil {
			value.hash = *chain.VerifiedBlockHash
		}
		cb.Announce(value, nil)
	})
}

// GetTransactions announces transaction bundles for the addresses in the
// block range, raw bytes included, all pages accumulated.
func (b *Bridge) GetTransactions(token Token, blockchainID string, addresses []string, begBlockNumber, endBlockNumber uint64) {
	cb := NewCallback(token, b.logger, func(tok Token, bundles []TransactionBundle, err error) {
		b.listener.AnnounceTransactions(tok, bundles, err)
	})
	query := blockset.TransactionsQuery{
		BlockchainID:     blockchainID,
		Addresses:        addresses,
		BeginBlockNumber: &begBlockNumber,
		EndBlockNumber:   &endBlockNumber,
		IncludeRaw:       true,
		IncludeTransfers: true,
	}
	b.client.GetTransactions(query, func(transactions []blockset.Transaction, err error) {
		if err != nil {
			cb.Announce(nil, err)
			return
		}
		bundles := make([]TransactionBundle, 0, len(transactions))
		for _, tx := range transactions {
			bundle, err := transactionBundle(tx)
			if err != nil {
				cb.Announce(nil, err)
				return
			}
			bundles = append(bundles, bundle)
		}
		cb.Announce(bundles, nil)
	})
}

// GetTransfers announces transfer bundles for the addresses in the block
// range, all pages accumulated.
func (b *Bridge) GetTransfers(token Token, blockchainID string, addresses []string, begBlockNumber, endBlockNumber uint64) {
	cb := NewCallback(token, b.logger, func(tok Token, bundles []TransferBundle, err error) {
		b.listener.AnnounceTransfers(tok, bundles, err)
	})
	query := blockset.TransfersQuery{
		BlockchainID:     blockchainID,
		Addresses:        addresses,
		BeginBlockNumber: begBlockNumber,
		EndBlockNumber:   endBlockNumber,
	}
	b.client.GetTransfers(query, func(transfers []blockset.Transfer, err error) {
		if err != nil {
			cb.Announce(nil, err)
			return
		}
		bundles := make([]TransferBundle, 0, len(transfers))
		for _, transfer := range transfers {
			bundles = append(bundles, transferBundle(transfer, TimestampUnknown, BlockHeightUnknown))
		}
		cb.Announce(bundles, nil)
	})
}

type submission struct {
	identifier string
	hash       string
}

// SubmitTransaction submits raw transaction bytes and announces the
// service's acknowledgement. A rejected submission announces a
// KindSubmission error carrying the classified reason.
func (b *Bridge) SubmitTransaction(token Token, blockchainID string, data []byte, identifier string) {
	cb := NewCallback(token, b.logger, func(tok Token, value submission, err error) {
		b.listener.AnnounceSubmission(tok, value.identifier, value.hash, err)
	})
	b.client.CreateTransaction(blockchainID, data, identifier, func(id blockset.TransactionIdentifier, err error) {
		if err != nil {
			cb.Announce(submission{}, err)
			return
		}
		value := submission{identifier: id.Identifier}
		if id.Hash != nil {
			value.hash = *id.Hash
		}
		cb.Announce(value, nil)
	})
}

// EstimateTransactionFee announces the estimated cost units for including
// the transaction.
func (b *Bridge) EstimateTransactionFee(token Token, blockchainID string, data []byte) {
	cb := NewCallback(token, b.logger, func(tok Token, bundle FeeEstimateBundle, err error) {
		b.listener.AnnounceFeeEstimate(tok, bundle, err)
	})
	b.client.EstimateTransactionFee(blockchainID, data, func(fee blockset.TransactionFee, err error) {
		if err != nil {
			cb.Announce(FeeEstimateBundle{}, err)
			return
		}
		cb.Announce(FeeEstimateBundle{
			CostUnits:  fee.CostUnits,
			Properties: fee.Properties,
		}, nil)
	})
}
