package bridge

import "github.com/walletsync/blockset-go/blockset"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SystemClient is the slice of the data service client the bridge
	// consumes. *blockset.Client satisfies it.
	SystemClient interface {
		GetBlockchain(blockchainID string, completion func(blockset.Blockchain, error))
		GetTransactions(q blockset.TransactionsQuery, completion func([]blockset.Transaction, error))
		GetTransfers(q blockset.TransfersQuery, completion func([]blockset.Transfer, error))
		CreateTransaction(blockchainID string, data []byte, identifier string, completion func(blockset.TransactionIdentifier, error))
		EstimateTransactionFee(blockchainID string, data []byte, completion func(blockset.TransactionFee, error))
	}

	// Listener receives engine-facing completions. Each method is invoked
	// exactly once per token handed to the matching Bridge operation, from
	// an arbitrary goroutine.
	Listener interface {
		AnnounceBlockNumber(token Token, blockNumber uint64, verifiedBlockHash string, err error)
		AnnounceTransactions(token Token, bundles []TransactionBundle, err error)
		AnnounceTransfers(token Token, bundles []TransferBundle, err error)
		AnnounceSubmission(token Token, identifier, hash string, err error)
		AnnounceFeeEstimate(token Token, bundle FeeEstimateBundle, err error)
	}
)
