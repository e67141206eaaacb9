package common

const (
	ComponentIndexer = "indexer"
	ComponentMailbox = "mailbox"
	ComponentScanner = "scanner"
	ComponentStore   = "store"
	ComponentMetrics = "metrics"
)
