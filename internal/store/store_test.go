package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/goran-ethernal/MailboxIndexor/pkg/events"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	cfg.ApplyDefaults()

	s, err := NewStore(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func testDispatch(nonce uint32, block, txIdx, logIdx uint64) core.IndexedLog[core.Message] {
	return core.IndexedLog[core.Message]{
		Event: core.Message{
			Version:     3,
			Nonce:       nonce,
			Origin:      1,
			Destination: 2,
			Body:        []byte{0xca, 0xfe},
		},
		Meta: core.LogMeta{
			BlockNumber:      block,
			TransactionID:    core.TxIDFromHash(common.BytesToHash([]byte{byte(block), byte(txIdx)})),
			TransactionIndex: txIdx,
			LogIndex:         logIdx,
		},
	}
}

func testDelivery(id byte, block uint64) core.IndexedLog[events.Delivery] {
	return core.IndexedLog[events.Delivery]{
		Event: events.Delivery{MessageID: common.BytesToHash([]byte{id})},
		Meta:  core.LogMeta{BlockNumber: block},
	}
}

func TestStoreCursor(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Never-scanned chains start at zero.
	block, err := s.LastScannedBlock(ctx, "neutron")
	require.NoError(t, err)
	require.Zero(t, block)

	// An empty chunk still advances the cursor: the range was scanned, it
	// just produced nothing.
	require.NoError(t, s.StoreChunk(ctx, "neutron", 1, 100, nil, nil))

	block, err = s.LastScannedBlock(ctx, "neutron")
	require.NoError(t, err)
	require.Equal(t, uint64(100), block)

	// Cursors are per chain.
	block, err = s.LastScannedBlock(ctx, "sepolia")
	require.NoError(t, err)
	require.Zero(t, block)
}

func TestStoreChunkRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dispatches := []core.IndexedLog[core.Message]{
		testDispatch(0, 10, 0, 1),
		testDispatch(1, 10, 2, 0),
		testDispatch(2, 15, 0, 0),
	}
	deliveries := []core.IndexedLog[events.Delivery]{
		testDelivery(0xd1, 12),
	}

	require.NoError(t, s.StoreChunk(ctx, "neutron", 10, 20, dispatches, deliveries))

	msgs, err := s.Messages(ctx, "neutron", 10, 20)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	for i, row := range msgs {
		require.Equal(t, uint32(i), row.Nonce)
		require.Equal(t, dispatches[i].Event, row.Message())
		require.Equal(t, dispatches[i].Event.ID(), row.MessageID)
		require.Equal(t, dispatches[i].Meta.TransactionID, row.TxID)
	}

	dels, err := s.Deliveries(ctx, "neutron", 10, 20)
	require.NoError(t, err)
	require.Len(t, dels, 1)
	require.Equal(t, common.BytesToHash([]byte{0xd1}), dels[0].MessageID)

	// Sub-ranges only see their own blocks.
	msgs, err = s.Messages(ctx, "neutron", 11, 20)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, uint32(2), msgs[0].Nonce)
}

func TestStoreChunkReplayIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dispatches := []core.IndexedLog[core.Message]{testDispatch(0, 10, 0, 0)}

	require.NoError(t, s.StoreChunk(ctx, "neutron", 1, 100, dispatches, nil))
	require.NoError(t, s.StoreChunk(ctx, "neutron", 1, 100, dispatches, nil))

	msgs, err := s.Messages(ctx, "neutron", 1, 100)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	block, err := s.LastScannedBlock(ctx, "neutron")
	require.NoError(t, err)
	require.Equal(t, uint64(100), block)
}

func TestMessageByID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	dispatch := testDispatch(7, 10, 0, 0)
	require.NoError(t, s.StoreChunk(ctx, "neutron", 1, 100, []core.IndexedLog[core.Message]{dispatch}, nil))

	row, err := s.MessageByID(ctx, dispatch.Event.ID())
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, uint32(7), row.Nonce)

	missing, err := s.MessageByID(ctx, common.BytesToHash([]byte{0x99}))
	require.NoError(t, err)
	require.Nil(t, missing)
}
