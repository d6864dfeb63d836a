// Package headerproof is the command line host for the header verifier. It
// reads one raw block header, verifies it and writes the committed envelope
// to stdout. Logs go to stderr so stdout carries nothing but the envelope.
//
// Exit codes:
//   - 0: the header verified and the envelope was written
//   - 1: any failure that is not a header rejection (I/O, configuration, usage)
//   - 2: malformed header
//   - 3: proof of work invalid
package headerproof

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bsv-blockchain/headerproof/errors"
	"github.com/bsv-blockchain/headerproof/model"
	hp "github.com/bsv-blockchain/headerproof/services/headerproof"
	"github.com/bsv-blockchain/headerproof/settings"
	"github.com/bsv-blockchain/headerproof/ulogger"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

// Host carries the process streams and the configuration shared by all commands.
type Host struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	settings *settings.Settings
	logger   ulogger.Logger
}

func NewHost(stdin io.Reader, stdout, stderr io.Writer, tSettings *settings.Settings) *Host {
	return &Host{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		settings: tSettings,
	}
}

// Run executes the command line in args and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	h := NewHost(stdin, stdout, stderr, settings.NewSettings())

	err := h.App().Run(args)
	if err != nil && h.logger != nil {
		h.logger.Errorf("%v", err)
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
	}

	return errors.ExitCode(err)
}

// App builds the cli application. Errors are returned to the caller instead
// of exiting the process.
func (h *Host) App() *cli.App {
	inputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "hex",
			Usage: "header as hex, with or without 0x prefix, instead of raw bytes on stdin",
		},
		&cli.StringFlag{
			Name:      "file",
			Usage:     "read raw header bytes from `FILE` instead of stdin",
			TakesFile: true,
		},
	}

	return &cli.App{
		Name:      "headerproof",
		Usage:     "verify a Bitcoin block header and commit its ABI encoded summary",
		Reader:    h.stdin,
		Writer:    h.stdout,
		ErrWriter: h.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "mainnet, testnet, regtest or stn",
				Value: h.settings.Network,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "DEBUG, INFO, WARN or ERROR",
				Value: h.settings.Logging.Level,
			},
		},
		Before:         h.before,
		ExitErrHandler: func(_ *cli.Context, _ error) {},
		Commands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "verify one header and write the envelope to stdout",
				Action: h.verify,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "envelope output format, raw or hex",
						Value: h.settings.HeaderProof.OutputFormat,
					},
					&cli.Int64Flag{
						Name:  "max-input",
						Usage: "maximum number of input bytes read",
						Value: h.settings.HeaderProof.MaxInputBytes,
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "log verification metrics on exit",
						Value: h.settings.HeaderProof.MetricsEnabled,
					},
				}, inputFlags...),
			},
			{
				Name:   "decode",
				Usage:  "print the header fields, target and work as JSON",
				Action: h.decode,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "prev-chainwork",
						Usage: "chain work up to the previous block as 64 hex digits, as reported by getblockheader",
					},
				}, inputFlags...),
			},
			{
				Name:   "genesis",
				Usage:  "print the genesis block header of the selected network as hex",
				Action: h.genesis,
			},
		},
	}
}

func (h *Host) before(c *cli.Context) error {
	if err := h.settings.SetNetwork(c.String("network")); err != nil {
		return err
	}

	h.settings.Logging.Level = c.String("log-level")

	h.logger = ulogger.New(h.settings.ClientName,
		ulogger.WithWriter(h.stderr),
		ulogger.WithLevel(h.settings.Logging.Level),
		ulogger.WithLoggerType(h.settings.Logging.LoggerType),
		ulogger.WithPrettyLogs(h.settings.Logging.PrettyLogs),
	)

	h.logger.Debugf("[headerproof] network %s", h.settings.ChainCfgParams.Name)

	return nil
}

// input returns a reader over the header bytes selected by the input flags.
func (h *Host) input(c *cli.Context) (io.Reader, func(), error) {
	noop := func() {}

	switch {
	case c.IsSet("hex") && c.IsSet("file"):
		return nil, noop, errors.NewInvalidArgumentError("--hex and --file are mutually exclusive")
	case c.IsSet("hex"):
		b, err := decodeHex(c.String("hex"))
		if err != nil {
			return nil, noop, err
		}

		return bytes.NewReader(b), noop, nil
	case c.IsSet("file"):
		f, err := os.Open(c.String("file"))
		if err != nil {
			return nil, noop, errors.NewProcessingError("failed to open %s", c.String("file"), err)
		}

		return f, func() { _ = f.Close() }, nil
	default:
		return h.stdin, noop, nil
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid header hex", err)
	}

	return b, nil
}

func (h *Host) verify(c *cli.Context) error {
	r, closeInput, err := h.input(c)
	if err != nil {
		return err
	}
	defer closeInput()

	h.settings.HeaderProof.OutputFormat = strings.ToLower(c.String("format"))
	h.settings.HeaderProof.MaxInputBytes = c.Int64("max-input")
	h.settings.HeaderProof.MetricsEnabled = c.Bool("metrics")

	if err = h.settings.Validate(); err != nil {
		return err
	}

	v := hp.New(h.logger, h.settings)

	err = v.Run(r, h.stdout)

	if h.settings.HeaderProof.MetricsEnabled {
		h.logMetrics()
	}

	return err
}

func (h *Host) genesis(_ *cli.Context) error {
	var buf bytes.Buffer

	if err := h.settings.ChainCfgParams.GenesisBlock.Header.Serialize(&buf); err != nil {
		return errors.NewProcessingError("failed to serialize genesis header", err)
	}

	if buf.Len() != model.BlockHeaderSize {
		return errors.NewProcessingError("genesis header is %d bytes", buf.Len())
	}

	_, err := fmt.Fprintln(h.stdout, hex.EncodeToString(buf.Bytes()))

	return err
}

// logMetrics writes the verifier metrics gathered in this process to the log.
func (h *Host) logMetrics() {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		h.logger.Warnf("[metrics] failed to gather: %v", err)
		return
	}

	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "headerproof_") {
			continue
		}

		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}

			switch {
			case m.GetCounter() != nil:
				h.logger.Infof("[metrics] %s{%s} %g", family.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h.logger.Infof("[metrics] %s count %d sum %g", family.GetName(), m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}
}
