// Package cosmos implements the mailbox and indexer interfaces for
// Cosmos-SDK chain families, where protocol events are emitted by a
// CosmWasm mailbox contract and recovered through transaction search.
package cosmos

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
)

// Named configuration errors, one per missing required connection field, so
// misconfiguration is diagnosable without reading source.
var (
	ErrMissingRPCURL   = errors.New("missing rpc_url in connection configuration")
	ErrMissingQueryURL = errors.New("missing query_url in connection configuration")
	ErrMissingChainID  = errors.New("missing chain_id in connection configuration")
	ErrMissingPrefix   = errors.New("missing prefix in connection configuration")
)

// InvalidURLError reports a connection URL that failed to parse, naming the
// offending field.
type InvalidURLError struct {
	Field string
	URL   string
	Err   error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid %s in connection configuration: %q (%v)", e.Field, e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// ConnectionConf resolves everything needed to talk to one cosmos chain.
// It is constructed once at startup, immutable, and cheap to copy.
type ConnectionConf struct {
	rpcURL   string
	queryURL string
	chainID  string
	prefix   string
}

// NewConnectionConf validates the raw connection descriptor and builds an
// immutable ConnectionConf. Every missing field has its own error; a
// syntactically broken URL is reported with the field name.
func NewConnectionConf(raw config.ConnectionConfig) (*ConnectionConf, error) {
	if raw.RPCURL == "" {
		return nil, ErrMissingRPCURL
	}
	if raw.QueryURL == "" {
		return nil, ErrMissingQueryURL
	}
	if raw.ChainID == "" {
		return nil, ErrMissingChainID
	}
	if raw.Prefix == "" {
		return nil, ErrMissingPrefix
	}

	for _, u := range []struct{ field, value string }{
		{"rpc_url", raw.RPCURL},
		{"query_url", raw.QueryURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil {
			return nil, &InvalidURLError{Field: u.field, URL: u.value, Err: err}
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return nil, &InvalidURLError{Field: u.field, URL: u.value, Err: errors.New("missing scheme or host")}
		}
	}

	return &ConnectionConf{
		rpcURL:   raw.RPCURL,
		queryURL: raw.QueryURL,
		chainID:  raw.ChainID,
		prefix:   raw.Prefix,
	}, nil
}

// RPCURL returns the tendermint RPC endpoint.
func (c *ConnectionConf) RPCURL() string { return c.rpcURL }

// QueryURL returns the LCD/REST query endpoint.
func (c *ConnectionConf) QueryURL() string { return c.queryURL }

// ChainID returns the chain's own identifier string.
func (c *ConnectionConf) ChainID() string { return c.chainID }

// Prefix returns the bech32 address prefix.
func (c *ConnectionConf) Prefix() string { return c.prefix }
