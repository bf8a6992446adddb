// Package blockset implements an asynchronous client for a Blockset-style
// blockchain data service: capability negotiation, request building, a
// pooled non-blocking transport, typed response parsing and a closed error
// taxonomy. Every operation accepts a completion and never blocks the
// caller; completions run on transport goroutines and must not assume any
// thread affinity.
package blockset

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/walletsync/blockset-go/pkg/workerpool"
)

// addressChunkSize caps how many addresses ride on one query; larger sets
// are split into concurrent chunked fetches.
const addressChunkSize = 50

// chunkWorkers bounds concurrency across address chunks of one call.
const chunkWorkers = 4

// Config configures a Client. Capabilities nil selects
// CurrentCapabilities; an explicit empty set negotiates plain JSON.
type Config struct {
	BaseURL           string
	Token             string
	Capabilities      *Capabilities
	RequestsPerSecond int
	HTTPClient        *http.Client
	Transport         Transport // optional override; HTTPClient et al. ignored when set
	Metrics           TransportMetrics
	Logger            *zap.Logger
}

// Client queries the data service. Safe for concurrent use; the transport's
// connection pool is the only shared mutable state.
type Client struct {
	baseURL      string
	token        string
	capabilities Capabilities
	transport    Transport
	logger       *zap.Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	capabilities := CurrentCapabilities
	if cfg.Capabilities != nil {
		capabilities = *cfg.Capabilities
	}
	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.HTTPClient, cfg.RequestsPerSecond, cfg.Metrics, logger)
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		token:        cfg.Token,
		capabilities: capabilities,
		transport:    transport,
		logger:       logger,
	}, nil
}

// Capabilities returns the negotiated capability set.
func (c *Client) Capabilities() Capabilities { return c.capabilities }

// send issues one request and completes exactly once: a synchronous
// KindBadRequest for build failures, KindBadResponse for transport
// failures, the classified error for non-success statuses, otherwise the
// parsed value.
func send[T any](c *Client, method string, segments []string, query url.Values, body any, parse func([]byte) (T, *Error), completion func(T, error)) {
	var zero T
	req, berr := c.newRequest(method, segments, query, body)
	if berr != nil {
		completion(zero, berr)
		return
	}
	success := responseSuccess(method)
	c.transport.Execute(req, func(status int, body []byte, err error) {
		if err != nil {
			completion(zero, badResponse(err.Error()))
			return
		}
		if !slices.Contains(success, status) {
			completion(zero, classifyStatus(status, body))
			return
		}
		value, perr := parse(body)
		if perr != nil {
			completion(zero, perr)
			return
		}
		completion(value, nil)
	})
}

// fetchAllPages follows server next links sequentially, accumulating every
// page before completing once. Each page's URL derives from the previous
// response, so pages never run concurrently. The loop is bounded only by
// the server's links; callers own any timeout.
func fetchAllPages[T any](c *Client, segments []string, query url.Values, key string, completion func([]T, error)) {
	req, berr := c.newRequest(http.MethodGet, segments, query, nil)
	if berr != nil {
		completion(nil, berr)
		return
	}

	var accumulated []T
	var handle func(status int, body []byte, err error)
	handle = func(status int, body []byte, err error) {
		if err != nil {
			completion(nil, badResponse(err.Error()))
			return
		}
		if !slices.Contains(responseSuccess(http.MethodGet), status) {
			completion(nil, classifyStatus(status, body))
			return
		}
		page, perr := parseEmbeddedPaged[T](body, key)
		if perr != nil {
			completion(nil, perr)
			return
		}
		accumulated = append(accumulated, page.Items...)
		if page.NextURL == nil {
			completion(accumulated, nil)
			return
		}
		next, berr := c.newRequestURL(http.MethodGet, *page.NextURL)
		if berr != nil {
			completion(nil, berr)
			return
		}
		c.transport.Execute(next, handle)
	}
	c.transport.Execute(req, handle)
}

// awaitPages adapts fetchAllPages to a blocking call for internal use off
// the caller's goroutine.
func awaitPages[T any](c *Client, segments []string, query url.Values, key string) ([]T, error) {
	type outcome struct {
		items []T
		err   error
	}
	ch := make(chan outcome, 1)
	fetchAllPages(c, segments, query, key, func(items []T, err error) {
		ch <- outcome{items: items, err: err}
	})
	result := <-ch
	return result.items, result.err
}

// fetchChunked splits addresses across queries of at most addressChunkSize
// and fans the chunks out over a bounded worker pool, completing once with
// everything accumulated. Ordering across chunks is unspecified; within a
// chunk, page order holds.
func fetchChunked[T any](c *Client, segments []string, baseQuery url.Values, addresses []string, key string, completion func([]T, error)) {
	chunks := chunkAddresses(addresses)
	go func() {
		var mu sync.Mutex
		all := []T{}
		err := workerpool.Run(chunkWorkers, chunks, func(chunk []string) error {
			query := cloneValues(baseQuery)
			for _, a := range chunk {
				query.Add("address", a)
			}
			items, err := awaitPages[T](c, segments, query, key)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
		if err != nil {
			completion(nil, err)
			return
		}
		completion(all, nil)
	}()
}

func chunkAddresses(addresses []string) [][]string {
	if len(addresses) == 0 {
		return [][]string{nil}
	}
	var chunks [][]string
	for start := 0; start < len(addresses); start += addressChunkSize {
		end := min(start+addressChunkSize, len(addresses))
		chunks = append(chunks, addresses[start:end])
	}
	return chunks
}

func cloneValues(v url.Values) url.Values {
	clone := make(url.Values, len(v))
	for key, values := range v {
		clone[key] = slices.Clone(values)
	}
	return clone
}

// Blockchain

// GetBlockchains retrieves all blockchains, optionally filtered to mainnet
// or testnet networks.
func (c *Client) GetBlockchains(mainnet *bool, completion func([]Blockchain, error)) {
	query := url.Values{}
	if mainnet != nil {
		query.Set("testnet", strconv.FormatBool(!*mainnet))
	}
	fetchAllPages[Blockchain](c, []string{"blockchains"}, query, "blockchains", completion)
}

// GetBlockchain retrieves one blockchain by id.
func (c *Client) GetBlockchain(blockchainID string, completion func(Blockchain, error)) {
	send(c, http.MethodGet, []string{"blockchains", blockchainID}, nil, nil,
		parseRoot[Blockchain], completion)
}

// Currency

// GetCurrencies retrieves currencies, optionally scoped to one blockchain.
func (c *Client) GetCurrencies(blockchainID *string, mainnet bool, completion func([]Currency, error)) {
	query := url.Values{}
	if blockchainID != nil {
		query.Set("blockchain_id", *blockchainID)
	}
	query.Set("testnet", strconv.FormatBool(!mainnet))
	query.Set("verified", "true")
	fetchAllPages[Currency](c, []string{"currencies"}, query, "currencies", completion)
}

// GetCurrency retrieves one currency by id.
func (c *Client) GetCurrency(currencyID string, completion func(Currency, error)) {
	send(c, http.MethodGet, []string{"currencies", currencyID}, nil, nil,
		parseRoot[Currency], completion)
}

// Transfer

// TransfersQuery scopes a transfer listing.
type TransfersQuery struct {
	BlockchainID     string
	Addresses        []string
	BeginBlockNumber uint64
	EndBlockNumber   uint64
	MaxPageSize      int
}

// GetTransfers retrieves every transfer touching the queried addresses in
// the block range, across all pages and address chunks.
func (c *Client) GetTransfers(q TransfersQuery, completion func([]Transfer, error)) {
	query := url.Values{}
	query.Set("blockchain_id", q.BlockchainID)
	query.Set("start_height", strconv.FormatUint(q.BeginBlockNumber, 10))
	query.Set("end_height", strconv.FormatUint(q.EndBlockNumber, 10))
	if q.MaxPageSize > 0 {
		query.Set("max_page_size", strconv.Itoa(q.MaxPageSize))
	}
	fetchChunked[Transfer](c, []string{"transfers"}, query, q.Addresses, "transfers", completion)
}

// GetTransfer retrieves one transfer by id.
func (c *Client) GetTransfer(transferID string, completion func(Transfer, error)) {
	send(c, http.MethodGet, []string{"transfers", transferID}, nil, nil,
		parseRoot[Transfer], completion)
}

// Transaction

// TransactionsQuery scopes a transaction listing.
type TransactionsQuery struct {
	BlockchainID     string
	Addresses        []string
	BeginBlockNumber *uint64
	EndBlockNumber   *uint64
	IncludeRaw       bool
	IncludeProof     bool
	IncludeTransfers bool
	MaxPageSize      int
}

// GetTransactions retrieves every transaction touching the queried
// addresses in the block range, across all pages and address chunks.
func (c *Client) GetTransactions(q TransactionsQuery, completion func([]Transaction, error)) {
	query := url.Values{}
	query.Set("blockchain_id", q.BlockchainID)
	if q.BeginBlockNumber != nil {
		query.Set("start_height", strconv.FormatUint(*q.BeginBlockNumber, 10))
	}
	if q.EndBlockNumber != nil {
		query.Set("end_height", strconv.FormatUint(*q.EndBlockNumber, 10))
	}
	query.Set("include_raw", strconv.FormatBool(q.IncludeRaw))
	query.Set("include_proof", strconv.FormatBool(q.IncludeProof))
	query.Set("include_transfers", strconv.FormatBool(q.IncludeTransfers))
	if q.MaxPageSize > 0 {
		query.Set("max_page_size", strconv.Itoa(q.MaxPageSize))
	}
	fetchChunked[Transaction](c, []string{"transactions"}, query, q.Addresses, "transactions", completion)
}

// GetTransaction retrieves one transaction by id.
func (c *Client) GetTransaction(transactionID string, includeRaw, includeProof bool, completion func(Transaction, error)) {
	query := url.Values{}
	query.Set("include_raw", strconv.FormatBool(includeRaw))
	query.Set("include_proof", strconv.FormatBool(includeProof))
	send(c, http.MethodGet, []string{"transactions", transactionID}, query, nil,
		parseRoot[Transaction], completion)
}

// transactionSubmission is the POST body for submit and fee estimation;
// Data rides as base64.
type transactionSubmission struct {
	BlockchainID string `json:"blockchain_id"`
	Identifier   string `json:"transaction_id,omitempty"`
	Data         []byte `json:"data"`
}

// CreateTransaction submits raw transaction bytes to the network. A
// submission the service rejects completes with a KindSubmission error
// carrying the classified reason.
func (c *Client) CreateTransaction(blockchainID string, data []byte, identifier string, completion func(TransactionIdentifier, error)) {
	body := transactionSubmission{
		BlockchainID: blockchainID,
		Identifier:   identifier,
		Data:         data,
	}
	send(c, http.MethodPost, []string{"transactions"}, nil, body,
		parseRoot[TransactionIdentifier], completion)
}

// EstimateTransactionFee asks the service to estimate the cost units
// needed to include the transaction, without submitting it.
func (c *Client) EstimateTransactionFee(blockchainID string, data []byte, completion func(TransactionFee, error)) {
	query := url.Values{}
	query.Set("estimate_fee", "true")
	body := transactionSubmission{
		BlockchainID: blockchainID,
		Data:         data,
	}
	send(c, http.MethodPost, []string{"transactions"}, query, body,
		parseRoot[TransactionFee], completion)
}

// Block

// BlocksQuery scopes a block listing.
type BlocksQuery struct {
	BlockchainID   string
	BeginHeight    uint64
	EndHeight      uint64
	IncludeRaw     bool
	IncludeTx      bool
	IncludeTxRaw   bool
	IncludeTxProof bool
	MaxPageSize    int
}

// GetBlocks retrieves the blocks in the height range across all pages.
func (c *Client) GetBlocks(q BlocksQuery, completion func([]Block, error)) {
	query := url.Values{}
	query.Set("blockchain_id", q.BlockchainID)
	query.Set("start_height", strconv.FormatUint(q.BeginHeight, 10))
	query.Set("end_height", strconv.FormatUint(q.EndHeight, 10))
	query.Set("include_raw", strconv.FormatBool(q.IncludeRaw))
	query.Set("include_tx", strconv.FormatBool(q.IncludeTx))
	query.Set("include_tx_raw", strconv.FormatBool(q.IncludeTxRaw))
	query.Set("include_tx_proof", strconv.FormatBool(q.IncludeTxProof))
	if q.MaxPageSize > 0 {
		query.Set("max_page_size", strconv.Itoa(q.MaxPageSize))
	}
	fetchAllPages[Block](c, []string{"blocks"}, query, "blocks", completion)
}

// GetBlock retrieves one block by id.
func (c *Client) GetBlock(blockID string, includeRaw, includeTx, includeTxRaw, includeTxProof bool, completion func(Block, error)) {
	query := url.Values{}
	query.Set("include_raw", strconv.FormatBool(includeRaw))
	query.Set("include_tx", strconv.FormatBool(includeTx))
	query.Set("include_tx_raw", strconv.FormatBool(includeTxRaw))
	query.Set("include_tx_proof", strconv.FormatBool(includeTxProof))
	send(c, http.MethodGet, []string{"blocks", blockID}, query, nil,
		parseRoot[Block], completion)
}

// Subscription

// GetSubscriptions retrieves all subscriptions for the authenticated
// client.
func (c *Client) GetSubscriptions(completion func([]Subscription, error)) {
	fetchAllPages[Subscription](c, []string{"subscriptions"}, nil, "subscriptions", completion)
}

// GetSubscription retrieves one subscription by its server-assigned id.
func (c *Client) GetSubscription(subscriptionID string, completion func(Subscription, error)) {
	send(c, http.MethodGet, []string{"subscriptions", subscriptionID}, nil, nil,
		parseRoot[Subscription], completion)
}

// CreateSubscription registers a new subscription; the result carries the
// server-assigned id.
func (c *Client) CreateSubscription(subscription Subscription, completion func(Subscription, error)) {
	send(c, http.MethodPost, []string{"subscriptions"}, nil, subscription,
		parseRoot[Subscription], completion)
}

// UpdateSubscription replaces the subscription identified by its id.
func (c *Client) UpdateSubscription(subscription Subscription, completion func(Subscription, error)) {
	if subscription.ID == "" {
		completion(Subscription{}, badRequest("subscription id is required"))
		return
	}
	send(c, http.MethodPut, []string{"subscriptions", subscription.ID}, nil, subscription,
		parseRoot[Subscription], completion)
}

// DeleteSubscription removes a subscription by id.
func (c *Client) DeleteSubscription(subscriptionID string, completion func(error)) {
	send(c, http.MethodDelete, []string{"subscriptions", subscriptionID}, nil, nil,
		func([]byte) (struct{}, *Error) { return struct{}{}, nil },
		func(_ struct{}, err error) { completion(err) })
}
