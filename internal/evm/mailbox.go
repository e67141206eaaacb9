package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
)

// Compile-time check that Mailbox satisfies the protocol contract.
var _ core.Mailbox = (*Mailbox)(nil)

// mailboxABI covers the read-only surface of the EVM mailbox contract.
const mailboxABI = `[
	{"type":"function","name":"count","stateMutability":"view","inputs":[],"outputs":[{"type":"uint32"}]},
	{"type":"function","name":"latestCheckpoint","stateMutability":"view","inputs":[],"outputs":[{"type":"bytes32"},{"type":"uint32"}]},
	{"type":"function","name":"delivered","stateMutability":"view","inputs":[{"type":"bytes32"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"defaultIsm","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]}
]`

// Mailbox reads one deployed EVM mailbox contract. Contract state is queried
// through eth_call, transaction outcomes through receipts. Instances are
// immutable after construction and safe for concurrent use.
type Mailbox struct {
	client    EthClient
	chainName string
	domain    core.Domain

	contract core.Address
	evmAddr  common.Address

	abi      abi.ABI
	finality BlockFinality

	log *logger.Logger
}

// NewMailbox builds a mailbox reader bound to one contract address.
func NewMailbox(
	client EthClient,
	chainName string,
	domain core.Domain,
	contract core.Address,
	finality BlockFinality,
	log *logger.Logger,
) (*Mailbox, error) {
	parsed, err := abi.JSON(strings.NewReader(mailboxABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mailbox ABI: %w", err)
	}

	return &Mailbox{
		client:    client,
		chainName: chainName,
		domain:    domain,
		contract:  contract,
		evmAddr:   contract.ToEvmAddress(),
		abi:       parsed,
		finality:  finality,
		log:       log.WithChain(chainName),
	}, nil
}

// ChainName returns the configured chain name. No I/O.
func (m *Mailbox) ChainName() string { return m.chainName }

// Address returns the contract's protocol-form address. No I/O.
func (m *Mailbox) Address() core.Address { return m.contract }

// LocalDomain returns the statically configured domain. No I/O, never fails.
func (m *Mailbox) LocalDomain() core.Domain { return m.domain }

// Count returns the total number of messages ever dispatched.
func (m *Mailbox) Count(ctx context.Context) (uint32, error) {
	out, err := m.call(ctx, nil, "count")
	if err != nil {
		return 0, err
	}

	count, ok := out[0].(uint32)
	if !ok {
		return 0, core.CommErrf("count", "unexpected return type %T", out[0])
	}
	return count, nil
}

// LatestCheckpoint returns the checkpoint as of the chain head minus lag
// blocks; nil lag means the configured chain tip. A lag exceeding the chain
// height is surfaced as a communication error, never a panic.
func (m *Mailbox) LatestCheckpoint(ctx context.Context, lag *uint64) (core.Checkpoint, error) {
	var blockNum *big.Int
	if lag != nil && *lag > 0 {
		header, err := tipHeader(ctx, m.client, m.finality)
		if err != nil {
			return core.Checkpoint{}, core.CommErr("latestCheckpoint", err)
		}
		head := header.Number.Uint64()
		if *lag > head {
			return core.Checkpoint{}, core.CommErrf("latestCheckpoint",
				"confirmation lag %d exceeds chain height %d", *lag, head)
		}
		blockNum = new(big.Int).SetUint64(head - *lag)
	}

	out, err := m.call(ctx, blockNum, "latestCheckpoint")
	if err != nil {
		return core.Checkpoint{}, err
	}

	root, rootOK := out[0].([32]byte)
	index, indexOK := out[1].(uint32)
	if !rootOK || !indexOK {
		return core.Checkpoint{}, core.CommErrf("latestCheckpoint",
			"unexpected return types %T, %T", out[0], out[1])
	}

	return core.Checkpoint{
		Root:          common.BytesToHash(root[:]),
		Index:         index,
		MailboxDomain: m.domain,
	}, nil
}

// Status looks up a transaction's outcome through its receipt. An unknown
// transaction yields (nil, nil), distinct from the node being unreachable.
func (m *Mailbox) Status(ctx context.Context, txID core.TxID) (*core.TxOutcome, error) {
	metrics.RPCRequestInc(m.chainName, "eth_getTransactionReceipt")

	receipt, err := m.client.GetTransactionReceipt(ctx, txID.Hash())
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		metrics.RPCErrorInc(m.chainName, "eth_getTransactionReceipt")
		return nil, core.CommErr("eth_getTransactionReceipt", err)
	}

	return &core.TxOutcome{
		TxID:     txID,
		Executed: receipt.Status == types.ReceiptStatusSuccessful,
		GasUsed:  new(big.Int).SetUint64(receipt.GasUsed),
		GasPrice: receipt.EffectiveGasPrice,
	}, nil
}

// DefaultModule returns the default inbound-verification module address.
func (m *Mailbox) DefaultModule(ctx context.Context) (core.Address, error) {
	out, err := m.call(ctx, nil, "defaultIsm")
	if err != nil {
		return core.Address{}, err
	}

	addr, ok := out[0].(common.Address)
	if !ok {
		return core.Address{}, core.CommErrf("defaultIsm", "unexpected return type %T", out[0])
	}
	return core.FromEvmAddress(addr), nil
}

// Delivered reports whether the message id has been processed here. The
// contract answers false for ids it has never seen, so an undispatched id
// is not an error.
func (m *Mailbox) Delivered(ctx context.Context, messageID common.Hash) (bool, error) {
	out, err := m.call(ctx, nil, "delivered", messageID)
	if err != nil {
		return false, err
	}

	delivered, ok := out[0].(bool)
	if !ok {
		return false, core.CommErrf("delivered", "unexpected return type %T", out[0])
	}
	return delivered, nil
}

// call packs, executes and unpacks one read-only contract method. A nil
// block number evaluates against the latest block.
func (m *Mailbox) call(ctx context.Context, blockNum *big.Int, method string, args ...any) ([]any, error) {
	metrics.RPCRequestInc(m.chainName, "eth_call")

	data, err := m.abi.Pack(method, args...)
	if err != nil {
		return nil, core.CommErr(method, err)
	}

	ret, err := m.client.CallContract(ctx, ethereum.CallMsg{To: &m.evmAddr, Data: data}, blockNum)
	if err != nil {
		metrics.RPCErrorInc(m.chainName, "eth_call")
		return nil, core.CommErr(method, err)
	}

	out, err := m.abi.Unpack(method, ret)
	if err != nil {
		return nil, core.CommErrf(method, "malformed contract response: %v", err)
	}
	if len(out) == 0 {
		return nil, core.CommErrf(method, "empty contract response")
	}
	return out, nil
}
