package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openhood/jeepcan/pkg/can"
	"github.com/openhood/jeepcan/pkg/candump"
	"github.com/openhood/jeepcan/pkg/cli"
	"github.com/openhood/jeepcan/pkg/dump"
	"github.com/openhood/jeepcan/pkg/events"
	"github.com/openhood/jeepcan/pkg/mcap"
	"github.com/openhood/jeepcan/pkg/pcapng"
)

type converter struct {
	candumpFile string
	pcapngFile  string
	outFile     string
	mcapFile    string
}

// frameReader is what both capture formats expose.
type frameReader interface {
	ReadFrame() (can.TimedFrame, error)
}

// eventSink is what both output formats expose.
type eventSink interface {
	WriteEvent(ev events.Event, ts time.Time) error
}

func NewCommand() *cobra.Command {
	s := &converter{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert captured CAN traffic to decoded body-network events.",
		Long: `Convert captured CAN traffic to decoded body-network events.

This command reads CAN frames from a candump log or a PCAPNG capture, decodes
them into typed events, and writes the events as JSON lines or to an MCAP file.`,
		Example: `  # Convert a candump log to JSON lines on stdout
  jeepcan convert --candump-file capture.log

  # Convert a PCAPNG capture to MCAP
  jeepcan convert --pcapng-file capture.pcapng --mcap-file output.mcap`,
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.candumpFile, "candump-file", s.candumpFile, "candump -L log file")
	cmd.Flags().StringVar(&s.pcapngFile, "pcapng-file", s.pcapngFile, "PCAPNG file")
	cmd.Flags().StringVar(&s.outFile, "out-file", s.outFile, "JSON lines output file (default stdout)")
	cmd.Flags().StringVar(&s.mcapFile, "mcap-file", s.mcapFile, "MCAP output file")

	cmd.MarkFlagsOneRequired("candump-file", "pcapng-file")
	cmd.MarkFlagsMutuallyExclusive("candump-file", "pcapng-file")
	cmd.MarkFlagsMutuallyExclusive("out-file", "mcap-file")

	return cmd
}

func (s *converter) run(ctx context.Context, input cli.Input) error {
	input.Logger.Info("Starting capture conversion",
		"candump_file", s.candumpFile,
		"pcapng_file", s.pcapngFile,
		"out_file", s.outFile,
		"mcap_file", s.mcapFile,
	)

	reader, closeIn, err := s.openReader()
	if err != nil {
		return err
	}
	defer closeIn()

	sink, closeOut, err := s.openSink()
	if err != nil {
		return err
	}
	defer closeOut()

	input.Logger.Info("Converting CAN frames...")
	frameCount := 0
	eventCount := 0
	unrecognizedCount := 0
	errorCount := 0
	startTime := time.Now()
	eventCounts := make(map[string]int)

	for {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "conversion cancelled")
		default:
		}

		tf, err := reader.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return errors.Wrap(err, "failed to read frame")
		}

		frameCount++

		evs, err := events.Parse(tf.Frame)
		if err != nil {
			var perr *events.ParseError
			if errors.As(err, &perr) && perr.Kind == events.UnrecognizedID {
				// background traffic from identifiers we do not decode
				unrecognizedCount++
				continue
			}
			errorCount++
			input.Logger.Debug("frame_decode_failed",
				"can_id", fmt.Sprintf("0x%03X", tf.ID()),
				"error", err,
			)
			if ew, ok := sink.(interface {
				WriteError(error, time.Time) error
			}); ok {
				if werr := ew.WriteError(err, tf.Timestamp); werr != nil {
					return errors.Wrap(werr, "failed to write error")
				}
			}
			continue
		}

		iter := evs.Iter()
		for ev, ok := iter.Next(); ok; ev, ok = iter.Next() {
			if err := sink.WriteEvent(ev, tf.Timestamp); err != nil {
				return errors.Wrap(err, "failed to write event")
			}
			eventCount++
			eventCounts[events.Category(ev)]++
		}

		// Progress reporting every 10000 frames
		if frameCount%10000 == 0 {
			input.Logger.Info(fmt.Sprintf("Progress: %d frames processed, %d events decoded, %d unrecognized",
				frameCount, eventCount, unrecognizedCount))
		}
	}

	duration := time.Since(startTime)

	input.Logger.Info("Conversion completed successfully!",
		"total_frames", frameCount,
		"decoded_events", eventCount,
		"unrecognized_frames", unrecognizedCount,
		"decode_errors", errorCount,
		"duration", duration,
		"rate_fps", fmt.Sprintf("%.2f", float64(frameCount)/duration.Seconds()),
	)

	if len(eventCounts) > 0 {
		input.Logger.Info(fmt.Sprintf("Found %d event categories", len(eventCounts)))
		for category, count := range eventCounts {
			input.Logger.Debug(fmt.Sprintf("  %s: %d events", category, count))
		}
	}

	return nil
}

func (s *converter) openReader() (frameReader, func(), error) {
	switch {
	case s.candumpFile != "":
		f, err := os.Open(s.candumpFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open candump file")
		}
		return candump.NewReader(f, nil), func() { f.Close() }, nil
	case s.pcapngFile != "":
		f, err := os.Open(s.pcapngFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open PCAPNG file")
		}
		reader, err := pcapng.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, errors.Wrap(err, "failed to create PCAPNG reader")
		}
		return reader, func() { f.Close() }, nil
	}
	return nil, nil, errors.New("no input file given")
}

func (s *converter) openSink() (eventSink, func(), error) {
	if s.mcapFile != "" {
		f, err := os.Create(s.mcapFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create MCAP file")
		}
		writer, err := mcap.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return writer, func() {
			writer.Close()
			f.Close()
		}, nil
	}

	out := io.Writer(os.Stdout)
	closeOut := func() {}
	if s.outFile != "" {
		f, err := os.Create(s.outFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create output file")
		}
		out = f
		closeOut = func() { f.Close() }
	}
	return dump.NewWriter(out), closeOut, nil
}
