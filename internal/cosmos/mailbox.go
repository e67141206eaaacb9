package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
)

// Compile-time check that Mailbox satisfies the protocol contract.
var _ core.Mailbox = (*Mailbox)(nil)

// blockHeightHeader pins an LCD query to a historical height.
const blockHeightHeader = "x-cosmos-block-height"

// Mailbox reads one deployed CosmWasm mailbox contract. Contract state is
// queried through the LCD endpoint, transaction outcomes through the
// tendermint RPC. Instances are immutable after construction and safe for
// concurrent use.
type Mailbox struct {
	conf      *ConnectionConf
	client    TendermintClient
	http      *http.Client
	chainName string
	domain    core.Domain

	contract   core.Address
	bech32Addr string

	log *logger.Logger
}

// NewMailbox builds a mailbox reader. The contract address is bech32-encoded
// once here with the connection's prefix, surfacing a bad prefix at startup.
func NewMailbox(
	conf *ConnectionConf,
	client TendermintClient,
	chainName string,
	domain core.Domain,
	contract core.Address,
	log *logger.Logger,
) (*Mailbox, error) {
	bech32Addr, err := EncodeAddress(conf.Prefix(), contract)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mailbox address: %w", err)
	}

	return &Mailbox{
		conf:       conf,
		client:     client,
		http:       &http.Client{},
		chainName:  chainName,
		domain:     domain,
		contract:   contract,
		bech32Addr: bech32Addr,
		log:        log.WithChain(chainName),
	}, nil
}

// ChainName returns the configured chain name. No I/O.
func (m *Mailbox) ChainName() string { return m.chainName }

// Address returns the contract's protocol-form address. No I/O.
func (m *Mailbox) Address() core.Address { return m.contract }

// LocalDomain returns the statically configured domain. No I/O, never fails.
func (m *Mailbox) LocalDomain() core.Domain { return m.domain }

// Contract query/response shapes of the CosmWasm mailbox.
type (
	countQuery      struct{}
	checkpointQuery struct{}
	moduleQuery     struct{}
	deliveredQuery  struct {
		ID string `json:"id"`
	}

	mailboxQuery struct {
		Count            *countQuery      `json:"count,omitempty"`
		LatestCheckpoint *checkpointQuery `json:"latest_checkpoint,omitempty"`
		DefaultModule    *moduleQuery     `json:"default_module,omitempty"`
		MessageDelivered *deliveredQuery  `json:"message_delivered,omitempty"`
	}

	countResponse struct {
		Count uint32 `json:"count"`
	}
	checkpointResponse struct {
		Root  string `json:"root"`
		Index uint32 `json:"index"`
	}
	moduleResponse struct {
		Module string `json:"module"`
	}
	deliveredResponse struct {
		Delivered bool `json:"delivered"`
	}
)

// Count returns the total number of messages ever dispatched.
func (m *Mailbox) Count(ctx context.Context) (uint32, error) {
	var resp countResponse
	if err := m.smartQuery(ctx, 0, mailboxQuery{Count: &countQuery{}}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// LatestCheckpoint returns the checkpoint as of the chain head minus lag
// blocks; nil lag means the current head. A lag exceeding the chain height
// is surfaced as a communication error, never a panic.
func (m *Mailbox) LatestCheckpoint(ctx context.Context, lag *uint64) (core.Checkpoint, error) {
	var height uint64
	if lag != nil && *lag > 0 {
		head, err := m.latestHeight(ctx)
		if err != nil {
			return core.Checkpoint{}, err
		}
		if *lag > head {
			return core.Checkpoint{}, core.CommErrf("latest_checkpoint",
				"confirmation lag %d exceeds chain height %d", *lag, head)
		}
		height = head - *lag
	}

	var resp checkpointResponse
	if err := m.smartQuery(ctx, height, mailboxQuery{LatestCheckpoint: &checkpointQuery{}}, &resp); err != nil {
		return core.Checkpoint{}, err
	}

	root, err := hex.DecodeString(strings.TrimPrefix(resp.Root, "0x"))
	if err != nil || len(root) != common.HashLength {
		return core.Checkpoint{}, core.CommErrf("latest_checkpoint", "malformed checkpoint root %q", resp.Root)
	}

	return core.Checkpoint{
		Root:          common.BytesToHash(root),
		Index:         resp.Index,
		MailboxDomain: m.domain,
	}, nil
}

// Status looks up a transaction's outcome. An unknown transaction yields
// (nil, nil), distinct from the node being unreachable.
func (m *Mailbox) Status(ctx context.Context, txID core.TxID) (*core.TxOutcome, error) {
	metrics.RPCRequestInc(m.chainName, "tx")

	res, err := m.client.Tx(ctx, txID.Hash().Bytes(), false)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		metrics.RPCErrorInc(m.chainName, "tx")
		return nil, core.CommErr("tx", err)
	}

	return &core.TxOutcome{
		TxID:     txID,
		Executed: res.TxResult.Code == 0,
		GasUsed:  big.NewInt(res.TxResult.GasUsed),
	}, nil
}

// DefaultModule returns the default inbound-verification module address.
func (m *Mailbox) DefaultModule(ctx context.Context) (core.Address, error) {
	var resp moduleResponse
	if err := m.smartQuery(ctx, 0, mailboxQuery{DefaultModule: &moduleQuery{}}, &resp); err != nil {
		return core.Address{}, err
	}

	addr, err := DecodeAddress(m.conf.Prefix(), resp.Module)
	if err != nil {
		return core.Address{}, core.CommErr("default_module", err)
	}
	return addr, nil
}

// Delivered reports whether the message id has been processed here. The
// contract answers false for ids it has never seen, so an undispatched id
// is not an error.
func (m *Mailbox) Delivered(ctx context.Context, messageID common.Hash) (bool, error) {
	q := mailboxQuery{MessageDelivered: &deliveredQuery{ID: messageID.Hex()}}

	var resp deliveredResponse
	if err := m.smartQuery(ctx, 0, q, &resp); err != nil {
		return false, err
	}
	return resp.Delivered, nil
}

func (m *Mailbox) latestHeight(ctx context.Context) (uint64, error) {
	metrics.RPCRequestInc(m.chainName, "status")

	status, err := m.client.Status(ctx)
	if err != nil {
		metrics.RPCErrorInc(m.chainName, "status")
		return 0, core.CommErr("status", err)
	}
	return uint64(status.SyncInfo.LatestBlockHeight), nil
}

// smartQuery runs a CosmWasm smart query against the LCD endpoint. A
// non-zero height pins the query to historical contract state.
func (m *Mailbox) smartQuery(ctx context.Context, height uint64, query mailboxQuery, out any) error {
	metrics.RPCRequestInc(m.chainName, "wasm_smart_query")

	payload, err := json.Marshal(query)
	if err != nil {
		return core.CommErr("wasm_smart_query", err)
	}

	url := fmt.Sprintf("%s/cosmwasm/wasm/v1/contract/%s/smart/%s",
		strings.TrimRight(m.conf.QueryURL(), "/"),
		m.bech32Addr,
		base64.StdEncoding.EncodeToString(payload),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.CommErr("wasm_smart_query", err)
	}
	if height > 0 {
		req.Header.Set(blockHeightHeader, strconv.FormatUint(height, 10))
	}

	res, err := m.http.Do(req)
	if err != nil {
		metrics.RPCErrorInc(m.chainName, "wasm_smart_query")
		return core.CommErr("wasm_smart_query", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.RPCErrorInc(m.chainName, "wasm_smart_query")
		return core.CommErr("wasm_smart_query", err)
	}
	if res.StatusCode != http.StatusOK {
		metrics.RPCErrorInc(m.chainName, "wasm_smart_query")
		return core.CommErrf("wasm_smart_query", "LCD returned status %d: %s", res.StatusCode, body)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return core.CommErrf("wasm_smart_query", "malformed LCD response: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return core.CommErrf("wasm_smart_query", "malformed contract response: %v", err)
	}
	return nil
}

// isNotFound matches the tendermint RPC error for an unindexed transaction.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}
