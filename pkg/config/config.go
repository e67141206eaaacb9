package config

import (
	"fmt"
	"time"

	"github.com/goran-ethernal/MailboxIndexor/internal/common"
)

// Supported chain families.
const (
	ProtocolCosmos   = "cosmos"
	ProtocolEthereum = "ethereum"
)

// Config is the complete configuration of the indexing service.
type Config struct {
	// Chains lists every chain the service observes
	Chains []ChainConfig `yaml:"chains" json:"chains" toml:"chains"`

	// Scanner contains the polling-loop configuration
	Scanner ScannerConfig `yaml:"scanner" json:"scanner" toml:"scanner"`

	// DB contains the local message-cache database configuration
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// ChainConfig describes one observed chain and its deployed mailbox.
type ChainConfig struct {
	// Name is the human-readable chain name used in logs and metrics
	Name string `yaml:"name" json:"name" toml:"name"`

	// Domain is the protocol-wide numeric chain identifier
	Domain uint32 `yaml:"domain" json:"domain" toml:"domain"`

	// Protocol selects the chain family: "cosmos" or "ethereum"
	Protocol string `yaml:"protocol" json:"protocol" toml:"protocol"`

	// Mailbox is the deployed mailbox address in 32-byte protocol hex form
	Mailbox string `yaml:"mailbox" json:"mailbox" toml:"mailbox"`

	// Connection holds the chain's endpoints and address encoding
	Connection ConnectionConfig `yaml:"connection" json:"connection" toml:"connection"`

	// Finality selects the EVM tip tag: "finalized", "safe" or "latest".
	// Ignored for the cosmos family.
	Finality string `yaml:"finality,omitempty" json:"finality,omitempty" toml:"finality,omitempty"`
}

// ConnectionConfig is the raw per-chain connection descriptor. Field
// presence is validated by the chain family's connection constructor, which
// reports a distinct error per missing field.
type ConnectionConfig struct {
	// RPCURL is the primary RPC endpoint
	RPCURL string `yaml:"rpc_url" json:"rpc_url" toml:"rpc_url"`

	// QueryURL is the secondary query endpoint (LCD/REST for cosmos chains)
	QueryURL string `yaml:"query_url" json:"query_url" toml:"query_url"`

	// ChainID is the chain's own identifier string
	ChainID string `yaml:"chain_id" json:"chain_id" toml:"chain_id"`

	// Prefix is the chain's address-encoding prefix (bech32 hrp)
	Prefix string `yaml:"prefix" json:"prefix" toml:"prefix"`
}

// ScannerConfig configures the chunked polling loop.
type ScannerConfig struct {
	// ChunkSize is the block range scanned per poll step
	ChunkSize uint64 `yaml:"chunk_size" json:"chunk_size" toml:"chunk_size"`

	// ConfirmationLag is the number of trailing blocks the scanner stays
	// behind the chain head to reduce reorganization risk
	ConfirmationLag uint64 `yaml:"confirmation_lag" json:"confirmation_lag" toml:"confirmation_lag"`

	// PollInterval is the pause between poll steps once caught up
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`
}

// ApplyDefaults sets default values for optional scanner fields.
func (s *ScannerConfig) ApplyDefaults() {
	if s.ChunkSize == 0 {
		s.ChunkSize = 1000
	}
	if s.PollInterval.Duration == 0 {
		s.PollInterval = common.NewDuration(6 * time.Second)
	}
}

// DatabaseConfig configures the local SQLite message cache.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the SQLite busy timeout in milliseconds
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`
}

// ApplyDefaults sets default values for optional database fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 30000
	}
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `yaml:"level" json:"level" toml:"level"`

	// Development enables the console encoder and stack traces
	Development bool `yaml:"development" json:"development" toml:"development"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled" toml:"enabled"`
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`
	Path          string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// ApplyDefaults sets defaults on the whole configuration tree.
func (c *Config) ApplyDefaults() {
	c.Scanner.ApplyDefaults()
	c.DB.ApplyDefaults()

	if c.Logging == nil {
		c.Logging = &LoggingConfig{Level: "info"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks the configuration for structural problems. Connection
// field presence is checked by the chain family constructors, which report a
// distinct named error per missing field.
func (c *Config) Validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("no chains configured")
	}

	seenNames := make(map[string]struct{}, len(c.Chains))
	seenDomains := make(map[uint32]struct{}, len(c.Chains))

	for i, chain := range c.Chains {
		if chain.Name == "" {
			return fmt.Errorf("chain %d: missing name", i)
		}
		if _, ok := seenNames[chain.Name]; ok {
			return fmt.Errorf("chain %q: duplicate name", chain.Name)
		}
		seenNames[chain.Name] = struct{}{}

		if chain.Domain == 0 {
			return fmt.Errorf("chain %q: missing domain", chain.Name)
		}
		if _, ok := seenDomains[chain.Domain]; ok {
			return fmt.Errorf("chain %q: duplicate domain %d", chain.Name, chain.Domain)
		}
		seenDomains[chain.Domain] = struct{}{}

		switch common.ToLowerWithTrim(chain.Protocol) {
		case ProtocolCosmos, ProtocolEthereum:
		default:
			return fmt.Errorf("chain %q: unknown protocol %q (must be %q or %q)",
				chain.Name, chain.Protocol, ProtocolCosmos, ProtocolEthereum)
		}

		if chain.Mailbox == "" {
			return fmt.Errorf("chain %q: missing mailbox address", chain.Name)
		}
	}

	return nil
}
