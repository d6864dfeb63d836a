package settings

import (
	"github.com/bsv-blockchain/go-chaincfg"
)

type LoggingSettings struct {
	Level      string
	LoggerType string
	PrettyLogs bool
}

type HeaderProofSettings struct {
	// MaxInputBytes caps how much of the input stream is read. Only the
	// first 80 bytes are ever decoded.
	MaxInputBytes int64
	// OutputFormat is "raw" for the committed envelope bytes or "hex" for
	// a 0x-prefixed hex string.
	OutputFormat   string
	MetricsEnabled bool
}

type Settings struct {
	ClientName     string
	Network        string
	ChainCfgParams *chaincfg.Params
	Logging        LoggingSettings
	HeaderProof    HeaderProofSettings
}
