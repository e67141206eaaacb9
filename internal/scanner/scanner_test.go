package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goran-ethernal/MailboxIndexor/internal/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/goran-ethernal/MailboxIndexor/pkg/events"
	"github.com/stretchr/testify/require"
)

// stubIndexer answers from canned data, recording the ranges it was asked
// for.
type stubIndexer[T any] struct {
	head   uint64
	logs   []core.IndexedLog[T]
	err    error
	ranges [][2]uint64
}

func (s *stubIndexer[T]) LatestBlockHeight(ctx context.Context) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.head, nil
}

func (s *stubIndexer[T]) GetRangeEventLogs(
	ctx context.Context, from, to uint64, parse core.LogParser[T],
) ([]core.IndexedLog[T], error) {
	if s.err != nil {
		return nil, s.err
	}
	s.ranges = append(s.ranges, [2]uint64{from, to})

	var out []core.IndexedLog[T]
	for _, l := range s.logs {
		if l.Meta.BlockNumber >= from && l.Meta.BlockNumber <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

// stubStore keeps everything in memory.
type stubStore struct {
	mu         sync.Mutex
	cursor     map[string]uint64
	dispatches []core.IndexedLog[core.Message]
	deliveries []core.IndexedLog[events.Delivery]
	chunks     [][2]uint64
	err        error
}

func newStubStore() *stubStore {
	return &stubStore{cursor: make(map[string]uint64)}
}

func (s *stubStore) LastScannedBlock(ctx context.Context, chain string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor[chain], nil
}

func (s *stubStore) StoreChunk(
	ctx context.Context,
	chain string,
	from, to uint64,
	dispatches []core.IndexedLog[core.Message],
	deliveries []core.IndexedLog[events.Delivery],
) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor[chain] = to
	s.dispatches = append(s.dispatches, dispatches...)
	s.deliveries = append(s.deliveries, deliveries...)
	s.chunks = append(s.chunks, [2]uint64{from, to})
	return nil
}

func testScannerConfig() config.ScannerConfig {
	return config.ScannerConfig{
		ChunkSize:       100,
		ConfirmationLag: 10,
		PollInterval:    common.NewDuration(time.Millisecond),
	}
}

func dispatchAt(block uint64, nonce uint32) core.IndexedLog[core.Message] {
	return core.IndexedLog[core.Message]{
		Event: core.Message{Nonce: nonce, Origin: 1, Destination: 2},
		Meta:  core.LogMeta{BlockNumber: block},
	}
}

func setupTestScanner(
	dispatches *stubIndexer[core.Message],
	deliveries *stubIndexer[events.Delivery],
	store *stubStore,
) *ChainScanner {
	return New(
		"neutron", dispatches, deliveries,
		events.ParseCosmosDispatch, events.ParseCosmosProcess,
		store, testScannerConfig(), logger.NewNopLogger(),
	)
}

func TestScannerStepScansOneChunk(t *testing.T) {
	dispatches := &stubIndexer[core.Message]{
		head: 1000,
		logs: []core.IndexedLog[core.Message]{dispatchAt(50, 0), dispatchAt(500, 1)},
	}
	deliveries := &stubIndexer[events.Delivery]{head: 1000}
	store := newStubStore()

	s := setupTestScanner(dispatches, deliveries, store)

	caughtUp, err := s.Step(context.Background())
	require.NoError(t, err)
	require.False(t, caughtUp)

	// Cursor 0, chunk 100: the first chunk is blocks 1-100 and only the
	// block-50 dispatch falls inside it.
	require.Equal(t, [][2]uint64{{1, 100}}, store.chunks)
	require.Len(t, store.dispatches, 1)
	require.Equal(t, uint64(50), store.dispatches[0].Meta.BlockNumber)
}

func TestScannerStepClampsToConfirmedHead(t *testing.T) {
	dispatches := &stubIndexer[core.Message]{head: 1000}
	deliveries := &stubIndexer[events.Delivery]{head: 1000}
	store := newStubStore()
	store.cursor["neutron"] = 950

	s := setupTestScanner(dispatches, deliveries, store)

	// Head 1000 minus lag 10 leaves blocks 951-990, less than a full chunk.
	caughtUp, err := s.Step(context.Background())
	require.NoError(t, err)
	require.True(t, caughtUp)
	require.Equal(t, [][2]uint64{{951, 990}}, store.chunks)
}

func TestScannerStepCaughtUp(t *testing.T) {
	dispatches := &stubIndexer[core.Message]{head: 1000}
	deliveries := &stubIndexer[events.Delivery]{head: 1000}
	store := newStubStore()
	store.cursor["neutron"] = 990

	s := setupTestScanner(dispatches, deliveries, store)

	caughtUp, err := s.Step(context.Background())
	require.NoError(t, err)
	require.True(t, caughtUp)

	// No range was scanned and the cursor did not move.
	require.Empty(t, dispatches.ranges)
	require.Empty(t, store.chunks)
}

func TestScannerStepYoungChain(t *testing.T) {
	// The whole chain is still within the confirmation lag.
	dispatches := &stubIndexer[core.Message]{head: 5}
	deliveries := &stubIndexer[events.Delivery]{head: 5}
	store := newStubStore()

	s := setupTestScanner(dispatches, deliveries, store)

	caughtUp, err := s.Step(context.Background())
	require.NoError(t, err)
	require.True(t, caughtUp)
	require.Empty(t, store.chunks)
}

func TestScannerStepPropagatesIndexerError(t *testing.T) {
	dispatches := &stubIndexer[core.Message]{err: errors.New("connection refused")}
	deliveries := &stubIndexer[events.Delivery]{head: 1000}
	store := newStubStore()

	s := setupTestScanner(dispatches, deliveries, store)

	_, err := s.Step(context.Background())
	require.ErrorContains(t, err, "connection refused")
	require.Empty(t, store.chunks)
}

func TestScannerRunCatchesUpThenStops(t *testing.T) {
	dispatches := &stubIndexer[core.Message]{head: 1000}
	deliveries := &stubIndexer[events.Delivery]{head: 1000}
	store := newStubStore()

	s := setupTestScanner(dispatches, deliveries, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// 990 confirmed blocks at chunk size 100 is ten chunks.
	require.Eventually(t, func() bool {
		block, err := store.LastScannedBlock(context.Background(), "neutron")
		return err == nil && block == 990
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop on cancellation")
	}
}
