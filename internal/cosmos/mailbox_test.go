package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	abci "github.com/cometbft/cometbft/abci/types"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/cosmos/mocks"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/stretchr/testify/require"
)

// lcdHandler serves CosmWasm smart queries the way an LCD endpoint does:
// the query travels base64-encoded in the path, the response is wrapped in
// a "data" envelope.
type lcdHandler struct {
	t *testing.T

	// respond maps the marshalled query JSON to the contract response
	respond map[string]string

	// lastHeightHeader records the height header of the last request
	lastHeightHeader string
}

func (h *lcdHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.lastHeightHeader = r.Header.Get("x-cosmos-block-height")

	_, encoded, ok := strings.Cut(r.URL.Path, "/smart/")
	if !ok {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}

	query, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		http.Error(w, "bad query encoding", http.StatusBadRequest)
		return
	}

	data, ok := h.respond[string(query)]
	if !ok {
		http.Error(w, "unexpected query: "+string(query), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, `{"data":%s}`, data)
}

func setupTestMailbox(t *testing.T, handler http.Handler) (*Mailbox, *mocks.TendermintClient) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	raw := validConnection()
	raw.QueryURL = server.URL
	conf, err := NewConnectionConf(raw)
	require.NoError(t, err)

	client := mocks.NewTendermintClient(t)
	mb, err := NewMailbox(conf, client, "neutron", 1853125230, testMailboxAddr(t), logger.NewNopLogger())
	require.NoError(t, err)

	return mb, client
}

func TestMailboxIdentity(t *testing.T) {
	mb, _ := setupTestMailbox(t, &lcdHandler{t: t})

	require.Equal(t, "neutron", mb.ChainName())
	require.Equal(t, core.Domain(1853125230), mb.LocalDomain())
	require.Equal(t, testMailboxAddr(t), mb.Address())
}

func TestMailboxCount(t *testing.T) {
	h := &lcdHandler{t: t, respond: map[string]string{
		`{"count":{}}`: `{"count":42}`,
	}}
	mb, _ := setupTestMailbox(t, h)

	count, err := mb.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint32(42), count)
}

func TestMailboxLatestCheckpointNoLag(t *testing.T) {
	root := common.HexToHash("0xaabb000000000000000000000000000000000000000000000000000000000000")
	h := &lcdHandler{t: t, respond: map[string]string{
		`{"latest_checkpoint":{}}`: fmt.Sprintf(`{"root":"%s","index":9}`, root.Hex()),
	}}
	mb, _ := setupTestMailbox(t, h)

	cp, err := mb.LatestCheckpoint(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, root, cp.Root)
	require.Equal(t, uint32(9), cp.Index)
	require.Equal(t, core.Domain(1853125230), cp.MailboxDomain)

	// no lag means no height pinning
	require.Empty(t, h.lastHeightHeader)
}

func TestMailboxLatestCheckpointWithLag(t *testing.T) {
	root := common.HexToHash("0x01")
	h := &lcdHandler{t: t, respond: map[string]string{
		`{"latest_checkpoint":{}}`: fmt.Sprintf(`{"root":"%s","index":5}`, root.Hex()),
	}}
	mb, client := setupTestMailbox(t, h)

	status := &ctypes.ResultStatus{}
	status.SyncInfo.LatestBlockHeight = 1000
	client.On("Status", context.Background()).Return(status, nil)

	lag := uint64(10)
	cp, err := mb.LatestCheckpoint(context.Background(), &lag)
	require.NoError(t, err)
	require.Equal(t, uint32(5), cp.Index)
	require.Equal(t, "990", h.lastHeightHeader)
}

func TestMailboxLatestCheckpointLagExceedsHeight(t *testing.T) {
	mb, client := setupTestMailbox(t, &lcdHandler{t: t})

	status := &ctypes.ResultStatus{}
	status.SyncInfo.LatestBlockHeight = 50
	client.On("Status", context.Background()).Return(status, nil)

	lag := uint64(100)
	_, err := mb.LatestCheckpoint(context.Background(), &lag)
	require.True(t, core.IsChainCommunicationError(err))
	require.ErrorContains(t, err, "exceeds chain height")
}

func TestMailboxStatus(t *testing.T) {
	mb, client := setupTestMailbox(t, &lcdHandler{t: t})
	ctx := context.Background()

	txID := core.TxIDFromHash(common.HexToHash("0xbeef"))

	t.Run("executed", func(t *testing.T) {
		res := &ctypes.ResultTx{TxResult: abci.ExecTxResult{Code: 0, GasUsed: 55000}}
		client.On("Tx", ctx, txID.Hash().Bytes(), false).Return(res, nil).Once()

		outcome, err := mb.Status(ctx, txID)
		require.NoError(t, err)
		require.True(t, outcome.Executed)
		require.Equal(t, int64(55000), outcome.GasUsed.Int64())
	})

	t.Run("reverted", func(t *testing.T) {
		res := &ctypes.ResultTx{TxResult: abci.ExecTxResult{Code: 5}}
		client.On("Tx", ctx, txID.Hash().Bytes(), false).Return(res, nil).Once()

		outcome, err := mb.Status(ctx, txID)
		require.NoError(t, err)
		require.False(t, outcome.Executed)
	})

	t.Run("unknown tx is nil, not an error", func(t *testing.T) {
		client.On("Tx", ctx, txID.Hash().Bytes(), false).
			Return(nil, fmt.Errorf("tx (BEEF) not found")).Once()

		outcome, err := mb.Status(ctx, txID)
		require.NoError(t, err)
		require.Nil(t, outcome)
	})

	t.Run("unreachable node is an error", func(t *testing.T) {
		client.On("Tx", ctx, txID.Hash().Bytes(), false).
			Return(nil, fmt.Errorf("connection refused")).Once()

		_, err := mb.Status(ctx, txID)
		require.True(t, core.IsChainCommunicationError(err))
	})
}

func TestMailboxDefaultModule(t *testing.T) {
	module, err := core.AddressFromHex("0x00000000000000000000000000000000000000000000000000000000000000ee")
	require.NoError(t, err)
	encoded, err := EncodeAddress("neutron", module)
	require.NoError(t, err)

	h := &lcdHandler{t: t, respond: map[string]string{
		`{"default_module":{}}`: fmt.Sprintf(`{"module":%q}`, encoded),
	}}
	mb, _ := setupTestMailbox(t, h)

	got, err := mb.DefaultModule(context.Background())
	require.NoError(t, err)
	require.Equal(t, module, got)
}

func TestMailboxDeliveredUnknownID(t *testing.T) {
	id := common.HexToHash("0xffff000000000000000000000000000000000000000000000000000000000000")
	q, err := json.Marshal(mailboxQuery{MessageDelivered: &deliveredQuery{ID: id.Hex()}})
	require.NoError(t, err)

	h := &lcdHandler{t: t, respond: map[string]string{
		string(q): `{"delivered":false}`,
	}}
	mb, _ := setupTestMailbox(t, h)

	delivered, err := mb.Delivered(context.Background(), id)
	require.NoError(t, err)
	require.False(t, delivered)
}

func TestMailboxCommunicationErrors(t *testing.T) {
	t.Run("LCD error status", func(t *testing.T) {
		mb, _ := setupTestMailbox(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))

		_, err := mb.Count(context.Background())
		require.True(t, core.IsChainCommunicationError(err))
	})

	t.Run("malformed envelope", func(t *testing.T) {
		mb, _ := setupTestMailbox(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))

		_, err := mb.Count(context.Background())
		require.True(t, core.IsChainCommunicationError(err))
	})

	t.Run("malformed checkpoint root", func(t *testing.T) {
		mb, _ := setupTestMailbox(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"root":"0x1234","index":1}}`))
		}))

		_, err := mb.LatestCheckpoint(context.Background(), nil)
		require.True(t, core.IsChainCommunicationError(err))
	})
}
