package blockset

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Client().CloseIdleConnections()
		server.Close()
	})
	return server
}

func serverClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func await[T any](t *testing.T, run func(completion func(T, error))) (T, error) {
	t.Helper()

	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	run(func(value T, err error) {
		ch <- outcome{value: value, err: err}
	})
	select {
	case o := <-ch:
		return o.value, o.err
	case <-time.After(10 * time.Second):
		t.Fatal("operation never completed")
		panic("unreachable")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected an error for a missing base URL")
	}
}

func TestGetBlockchain(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blockchains/bitcoin-mainnet" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"id": "bitcoin-mainnet", "name": "Bitcoin", "verified_height": 700000, "verified_block_hash": "00ab"}`)
	})
	client := serverClient(t, server)

	chain, err := await(t, func(completion func(Blockchain, error)) {
		client.GetBlockchain("bitcoin-mainnet", completion)
	})
	if err != nil {
		t.Fatalf("GetBlockchain: %v", err)
	}
	if chain.Name != "Bitcoin" || *chain.VerifiedHeight != 700000 || *chain.VerifiedBlockHash != "00ab" {
		t.Fatalf("unexpected blockchain: %+v", chain)
	}
}

func TestGetBlockchainsFollowsPages(t *testing.T) {
	var requests atomic.Int32
	var server *httptest.Server
	server = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		body := map[string]any{
			"_embedded": map[string]any{
				"blockchains": []map[string]any{
					{"id": fmt.Sprintf("chain-%d-a", page)},
					{"id": fmt.Sprintf("chain-%d-b", page)},
				},
			},
		}
		if page < 3 {
			body["next"] = fmt.Sprintf("%s/blockchains?page=%d", server.URL, page+1)
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	client := serverClient(t, server)

	chains, err := await(t, func(completion func([]Blockchain, error)) {
		client.GetBlockchains(nil, completion)
	})
	if err != nil {
		t.Fatalf("GetBlockchains: %v", err)
	}
	if len(chains) != 6 {
		t.Fatalf("expected 6 blockchains across 3 pages, got %d", len(chains))
	}
	if chains[0].ID != "chain-1-a" || chains[5].ID != "chain-3-b" {
		t.Fatalf("page order lost: first %q last %q", chains[0].ID, chains[5].ID)
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestGetTransactionsChunksAddresses(t *testing.T) {
	var mu sync.Mutex
	var chunkSizes []int
	seen := map[string]bool{}

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		addresses := r.URL.Query()["address"]
		mu.Lock()
		chunkSizes = append(chunkSizes, len(addresses))
		for _, a := range addresses {
			seen[a] = true
		}
		mu.Unlock()

		items := make([]map[string]any, len(addresses))
		for i, a := range addresses {
			items[i] = map[string]any{"transaction_id": "tx-" + a, "status": "confirmed"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_embedded": map[string]any{"transactions": items},
		})
	})
	client := serverClient(t, server)

	addresses := make([]string, 120)
	for i := range addresses {
		addresses[i] = fmt.Sprintf("addr-%03d", i)
	}
	transactions, err := await(t, func(completion func([]Transaction, error)) {
		client.GetTransactions(TransactionsQuery{
			BlockchainID: "bitcoin-mainnet",
			Addresses:    addresses,
		}, completion)
	})
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(transactions) != 120 {
		t.Fatalf("expected one transaction per address, got %d", len(transactions))
	}

	mu.Lock()
	defer mu.Unlock()
	if len(chunkSizes) != 3 {
		t.Fatalf("expected 3 chunks for 120 addresses, got %v", chunkSizes)
	}
	for _, size := range chunkSizes {
		if size > addressChunkSize {
			t.Fatalf("chunk exceeds limit: %v", chunkSizes)
		}
	}
	if len(seen) != 120 {
		t.Fatalf("expected every address queried exactly once, got %d", len(seen))
	}
}

func TestGetTransfersEmptyResult(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	client := serverClient(t, server)

	transfers, err := await(t, func(completion func([]Transfer, error)) {
		client.GetTransfers(TransfersQuery{
			BlockchainID: "bitcoin-mainnet",
			Addresses:    []string{"addr"},
		}, completion)
	})
	if err != nil {
		t.Fatalf("GetTransfers: %v", err)
	}
	if transfers == nil || len(transfers) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", transfers)
	}
}

func TestCreateTransaction(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		var body struct {
			BlockchainID string `json:"blockchain_id"`
			Identifier   string `json:"transaction_id"`
			Data         []byte `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.BlockchainID != "bitcoin-mainnet" || string(body.Data) != "rawtx" {
			t.Errorf("unexpected body: %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"transaction_id": "tid", "identifier": "ident", "hash": "beef"}`)
	})
	client := serverClient(t, server)

	id, err := await(t, func(completion func(TransactionIdentifier, error)) {
		client.CreateTransaction("bitcoin-mainnet", []byte("rawtx"), "ident", completion)
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if id.ID != "tid" || id.Hash == nil || *id.Hash != "beef" {
		t.Fatalf("unexpected identifier: %+v", id)
	}
}

func TestCreateTransactionRejected(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"submit_status": "fee_too_low", "network_message": "fee below floor"}`)
	})
	client := serverClient(t, server)

	_, err := await(t, func(completion func(TransactionIdentifier, error)) {
		client.CreateTransaction("bitcoin-mainnet", []byte("rawtx"), "", completion)
	})

	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if serr.Kind != KindSubmission || serr.Submission != SubmissionInsufficientFee {
		t.Fatalf("unexpected classification: %+v", serr)
	}
	if serr.Detail != "fee below floor" {
		t.Fatalf("Detail = %q", serr.Detail)
	}
}

func TestEstimateTransactionFee(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("estimate_fee"); got != "true" {
			t.Errorf("estimate_fee = %q", got)
		}
		fmt.Fprint(w, `{"cost_units": 546, "properties": {"gas_price": "12"}}`)
	})
	client := serverClient(t, server)

	fee, err := await(t, func(completion func(TransactionFee, error)) {
		client.EstimateTransactionFee("ethereum-mainnet", []byte("rawtx"), completion)
	})
	if err != nil {
		t.Fatalf("EstimateTransactionFee: %v", err)
	}
	if fee.CostUnits != 546 || fee.Properties["gas_price"] != "12" {
		t.Fatalf("unexpected fee: %+v", fee)
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			var sub Subscription
			_ = json.NewDecoder(r.Body).Decode(&sub)
			sub.ID = "sub-1"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(sub)
		case r.Method == http.MethodDelete:
			if r.URL.Path != "/subscriptions/sub-1" {
				t.Errorf("path = %q", r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	client := serverClient(t, server)

	created, err := await(t, func(completion func(Subscription, error)) {
		client.CreateSubscription(Subscription{DeviceID: "device-1"}, completion)
	})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	if created.ID != "sub-1" || created.DeviceID != "device-1" {
		t.Fatalf("unexpected subscription: %+v", created)
	}

	errCh := make(chan error, 1)
	client.DeleteSubscription(created.ID, func(err error) { errCh <- err })
	if err := <-errCh; err != nil {
		t.Fatalf("DeleteSubscription: %v", err)
	}
}

func TestUpdateSubscriptionRequiresID(t *testing.T) {
	client := testClient(t, Config{})

	_, err := await(t, func(completion func(Subscription, error)) {
		client.UpdateSubscription(Subscription{DeviceID: "device-1"}, completion)
	})
	serr, ok := err.(*Error)
	if !ok || serr.Kind != KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestGetBlockchainErrorClassification(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		want   Kind
	}{
		{name: "not found", status: 404, want: KindBadRequest},
		{name: "forbidden", status: 403, want: KindPermission},
		{name: "rate limited", status: 429, want: KindResource},
		{name: "unavailable", status: 500, want: KindUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			client := serverClient(t, server)

			_, err := await(t, func(completion func(Blockchain, error)) {
				client.GetBlockchain("bitcoin-mainnet", completion)
			})
			serr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if serr.Kind != tc.want {
				t.Fatalf("Kind = %v, want %v", serr.Kind, tc.want)
			}
		})
	}
}
