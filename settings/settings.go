package settings

import (
	"strings"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/headerproof/errors"
)

const (
	OutputFormatRaw = "raw"
	OutputFormatHex = "hex"

	// HeaderSize is the serialized size of a block header.
	HeaderSize = 80
)

func NewSettings() *Settings {
	network := getString("network", "mainnet")

	params, err := chaincfg.GetChainParams(network)
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName:     getString("clientName", "headerproof"),
		Network:        network,
		ChainCfgParams: params,
		Logging: LoggingSettings{
			Level:      getString("logLevel", "INFO"),
			LoggerType: getString("logger_type", "zerolog"),
			PrettyLogs: getBool("PRETTY_LOGS", true),
		},
		HeaderProof: HeaderProofSettings{
			MaxInputBytes:  int64(getInt("headerproof_maxInputBytes", 4096)),
			OutputFormat:   strings.ToLower(getString("headerproof_outputFormat", OutputFormatRaw)),
			MetricsEnabled: getBool("headerproof_metricsEnabled", false),
		},
	}
}

// Validate checks the settings that the verification pipeline depends on.
func (s *Settings) Validate() error {
	if s.ChainCfgParams == nil {
		return errors.NewConfigurationError("no chain params for network %q", s.Network)
	}

	if s.HeaderProof.MaxInputBytes < HeaderSize {
		return errors.NewConfigurationError("headerproof_maxInputBytes must be at least %d, got %d", HeaderSize, s.HeaderProof.MaxInputBytes)
	}

	switch s.HeaderProof.OutputFormat {
	case OutputFormatRaw, OutputFormatHex:
	default:
		return errors.NewConfigurationError("unknown headerproof_outputFormat %q", s.HeaderProof.OutputFormat)
	}

	return nil
}

// SetNetwork switches the chain params, e.g. from a command line flag.
func (s *Settings) SetNetwork(network string) error {
	params, err := chaincfg.GetChainParams(network)
	if err != nil {
		return errors.NewConfigurationError("unknown network %q", network, err)
	}

	s.Network = network
	s.ChainCfgParams = params

	return nil
}
