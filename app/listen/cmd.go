package listen

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/openhood/jeepcan/pkg/cli"
	"github.com/openhood/jeepcan/pkg/dump"
	"github.com/openhood/jeepcan/pkg/events"
	"github.com/openhood/jeepcan/pkg/listener"
)

type listen struct {
	iface   string
	outFile string
	ids     []string
}

func NewCommand() *cobra.Command {
	s := &listen{
		iface: "can0",
	}

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Decode live CAN traffic from a SocketCAN interface.",
		Long: `Decode live CAN traffic from a SocketCAN interface.

This command attaches to a SocketCAN interface, decodes body-network frames
into typed events, and writes them as JSON lines until interrupted.`,
		Example: `  # Stream decoded events from can0 to stdout
  jeepcan listen --interface can0`,
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.iface, "interface", s.iface, "SocketCAN interface")
	cmd.Flags().StringVar(&s.outFile, "out-file", s.outFile, "JSON lines output file (default stdout)")
	cmd.Flags().StringSliceVar(&s.ids, "id", s.ids, "only decode these hex frame identifiers, e.g. 122,2fa")

	return cmd
}

// parseIDs reads the --id values as hex identifiers.
func parseIDs(raw []string) ([]uint32, error) {
	ids := make([]uint32, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "bad frame identifier %q", s)
		}
		ids = append(ids, uint32(id))
	}
	return ids, nil
}

func (s *listen) run(ctx context.Context, input cli.Input) error {
	input.Logger.Info("Attaching to CAN interface", "interface", s.iface)

	ids, err := parseIDs(s.ids)
	if err != nil {
		return err
	}

	l, err := listener.Connect(ctx, s.iface)
	if err != nil {
		return err
	}
	defer l.Close()
	l.Filter(ids...)

	// closing the listener is what unblocks Next on shutdown
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	out := io.Writer(os.Stdout)
	if s.outFile != "" {
		f, err := os.Create(s.outFile)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		defer f.Close()
		out = f
	}
	writer := dump.NewWriter(out)

	eventCount := 0
	unrecognizedCount := 0
	errorCount := 0
	startTime := time.Now()
	eventCounts := make(map[string]int)

	for {
		msg, ok := l.Next()
		if !ok {
			// a transport error after cancellation is just the shutdown path
			if ctx.Err() != nil {
				break
			}
			return msg.Err
		}

		now := time.Now()
		if msg.Err != nil {
			var perr *events.ParseError
			if errors.As(msg.Err, &perr) && perr.Kind == events.UnrecognizedID {
				unrecognizedCount++
				input.Logger.Debug("frame_unrecognized",
					"can_id", fmt.Sprintf("0x%03X", perr.Frame().ID()),
				)
				continue
			}
			errorCount++
			if err := writer.WriteError(msg.Err, now); err != nil {
				return errors.Wrap(err, "failed to write error")
			}
			continue
		}

		if err := writer.WriteEvent(msg.Event, now); err != nil {
			return errors.Wrap(err, "failed to write event")
		}
		eventCount++
		eventCounts[events.Category(msg.Event)]++
	}

	duration := time.Since(startTime)

	input.Logger.Info("Listener stopped",
		"decoded_events", eventCount,
		"unrecognized_frames", unrecognizedCount,
		"decode_errors", errorCount,
		"duration", duration,
	)

	if len(eventCounts) > 0 {
		input.Logger.Info(fmt.Sprintf("Found %d event categories", len(eventCounts)))
		for category, count := range eventCounts {
			input.Logger.Debug(fmt.Sprintf("  %s: %d events", category, count))
		}
	}

	return nil
}
