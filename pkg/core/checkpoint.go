package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Checkpoint is a commitment to a mailbox's message log at a given append
// count: the merkle root over the first Index+1 messages. Checkpoints are
// queried by this layer and signed by validators elsewhere.
type Checkpoint struct {
	// Root is the merkle root of the mailbox log.
	Root common.Hash

	// Index is the index of the last message covered by Root.
	Index uint32

	// MailboxDomain is the domain of the mailbox the checkpoint commits to.
	MailboxDomain Domain
}

// TxOutcome is the execution result of a submitted transaction, looked up by
// its protocol transaction identifier.
type TxOutcome struct {
	TxID TxID

	// Executed is true when the transaction ran successfully on-chain.
	Executed bool

	GasUsed  *big.Int
	GasPrice *big.Int
}
