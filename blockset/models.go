package blockset

// Resource models mirror the data service wire shapes. Every decode
// tolerates unknown fields so server-side additions never break parsing.

// Amount is a currency-qualified value, transported as strings.
type Amount struct {
	CurrencyID string `json:"currency_id"`
	Value      string `json:"amount"`
}

// BlockchainFee is one entry of a blockchain's fee-estimate list.
type BlockchainFee struct {
	Fee                   Amount `json:"fee"`
	Tier                  string `json:"tier"`
	EstimatedConfirmation uint64 `json:"estimated_confirmation_in"`
}

// Blockchain describes one supported network.
type Blockchain struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	Network                 string          `json:"network"`
	IsMainnet               bool            `json:"is_mainnet"`
	NativeCurrencyID        string          `json:"native_currency_id"`
	VerifiedHeight          *uint64         `json:"verified_height,omitempty"`
	VerifiedBlockHash       *string         `json:"verified_block_hash,omitempty"`
	FeeEstimates            []BlockchainFee `json:"fee_estimates"`
	ConfirmationsUntilFinal uint32          `json:"confirmations_until_final"`
}

// CurrencyDenomination is one unit of a currency (e.g. wei, gwei, ether).
type CurrencyDenomination struct {
	Name     string `json:"name"`
	Code     string `json:"short_name"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol,omitempty"`
}

// Currency describes a native or token currency on a blockchain.
type Currency struct {
	ID            string                 `json:"currency_id"`
	Name          string                 `json:"name"`
	Code          string                 `json:"code"`
	Type          string                 `json:"type"`
	BlockchainID  string                 `json:"blockchain_id"`
	Address       *string                `json:"address,omitempty"`
	Verified      bool                   `json:"verified"`
	Denominations []CurrencyDenomination `json:"denominations"`
}

// Transfer is one movement of an amount between two addresses.
type Transfer struct {
	ID            string            `json:"transfer_id"`
	BlockchainID  string            `json:"blockchain_id"`
	Index         uint64            `json:"index"`
	Amount        Amount            `json:"amount"`
	Source        *string           `json:"from_address,omitempty"`
	Target        *string           `json:"to_address,omitempty"`
	TransactionID *string           `json:"transaction_id,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
}

// Transaction is a ledger transaction with its embedded transfers.
// Raw is base64 on the wire and present only when requested.
type Transaction struct {
	ID            string            `json:"transaction_id"`
	BlockchainID  string            `json:"blockchain_id"`
	Hash          string            `json:"hash"`
	Identifier    string            `json:"identifier"`
	BlockHash     *string           `json:"block_hash,omitempty"`
	BlockHeight   *uint64           `json:"block_height,omitempty"`
	Index         *uint64           `json:"index,omitempty"`
	Confirmations *uint64           `json:"confirmations,omitempty"`
	Status        string            `json:"status"`
	Size          uint64            `json:"size"`
	Timestamp     *string           `json:"timestamp,omitempty"`
	FirstSeen     *string           `json:"first_seen,omitempty"`
	Raw           []byte            `json:"raw,omitempty"`
	Proof         *string           `json:"proof,omitempty"`
	Fee           Amount            `json:"fee"`
	Embedded      TransactionInner  `json:"_embedded,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
}

// TransactionInner holds a transaction's own embedded collections.
type TransactionInner struct {
	Transfers []Transfer `json:"transfers,omitempty"`
}

// Transfers returns the embedded transfers, never nil.
func (t *Transaction) Transfers() []Transfer {
	return t.Embedded.Transfers
}

// TransactionIdentifier is the service's acknowledgement of a submitted
// transaction; Hash may be absent until the network has seen it.
type TransactionIdentifier struct {
	ID           string  `json:"transaction_id"`
	BlockchainID string  `json:"blockchain_id"`
	Hash         *string `json:"hash,omitempty"`
	Identifier   string  `json:"identifier"`
}

// TransactionFee is the estimated cost of including a transaction.
// CostUnits is a best estimate without margin; it may be an upper limit.
type TransactionFee struct {
	CostUnits  uint64            `json:"cost_units"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Block is one block, optionally with raw bytes and transactions.
type Block struct {
	ID           string     `json:"block_id"`
	BlockchainID string     `json:"blockchain_id"`
	Hash         string     `json:"hash"`
	Height       uint64     `json:"height"`
	Header       *string    `json:"header,omitempty"`
	Raw          []byte     `json:"raw,omitempty"`
	Mined        string     `json:"mined"`
	Size         uint64     `json:"size"`
	PrevHash     *string    `json:"prev_hash,omitempty"`
	NextHash     *string    `json:"next_hash,omitempty"`
	Embedded     BlockInner `json:"_embedded,omitempty"`
}

// BlockInner holds a block's embedded collections.
type BlockInner struct {
	Transactions []Transaction `json:"transactions,omitempty"`
}

// SubscriptionEndpoint is where notifications for a subscription go.
type SubscriptionEndpoint struct {
	Environment string `json:"environment"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
}

// SubscriptionEvent names a watched event and the confirmation depths at
// which it should fire.
type SubscriptionEvent struct {
	Name          string   `json:"name"`
	Confirmations []uint32 `json:"confirmations"`
}

// SubscriptionCurrency binds a currency's addresses to watched events.
type SubscriptionCurrency struct {
	CurrencyID string              `json:"currency_id"`
	Addresses  []string            `json:"addresses"`
	Events     []SubscriptionEvent `json:"events"`
}

// Subscription registers a device endpoint for notifications about a set
// of currencies and addresses. ID is assigned by the service on creation.
type Subscription struct {
	ID         string                 `json:"subscription_id,omitempty"`
	DeviceID   string                 `json:"device_id"`
	Endpoint   SubscriptionEndpoint   `json:"endpoint"`
	Currencies []SubscriptionCurrency `json:"currencies"`
}
