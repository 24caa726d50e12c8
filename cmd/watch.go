package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mj1618/inputsource/internal/events"
	"github.com/mj1618/inputsource/internal/model"
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream input source changes and keyboard input as JSONL",
	Long: `Stream an event to stdout for every change of the selected input source
and, unless --no-hid is given, every HID input value from attached keyboards
and keypads.

Each line is a JSON object. The first line has type "start" and the last
has type "done". Output is always JSONL regardless of the --format flag.

Receiving keyboard input values requires the Input Monitoring permission
(System Settings > Privacy & Security > Input Monitoring).

Use Ctrl+C or --duration to stop watching.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Ctrl+C)")
	watchCmd.Flags().Bool("no-hid", false, "Only report input source changes")
	watchCmd.Flags().String("only", "", "Only emit events of one type: source, value")
}

// watchOptions configures a watch run.
type watchOptions struct {
	HID  bool
	Only model.EventKind // empty emits every kind
}

func parseOnly(s string) (model.EventKind, error) {
	switch s {
	case "":
		return "", nil
	case "source", string(model.EventInputSource):
		return model.EventInputSource, nil
	case "value", string(model.EventInputValue):
		return model.EventInputValue, nil
	default:
		return "", fmt.Errorf("unsupported --only value: %s (use source or value)", s)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	durationSec, _ := cmd.Flags().GetInt("duration")
	noHID, _ := cmd.Flags().GetBool("no-hid")
	onlyStr, _ := cmd.Flags().GetString("only")

	only, err := parseOnly(onlyStr)
	if err != nil {
		return err
	}
	opts := watchOptions{
		HID:  cfg.Watch.HID && !noHID && only != model.EventInputSource,
		Only: only,
	}
	if opts.HID && platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if durationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
		defer cancel()
	}

	return watch(ctx, provider, opts, os.Stdout)
}

// watch subscribes to the provider's events and writes them to w until ctx
// is done. It blocks in the provider's run loop.
func watch(ctx context.Context, provider *platform.Provider, opts watchOptions, w io.Writer) error {
	lw := output.NewLineWriter(w)
	var (
		mu         sync.Mutex
		eventCount int
	)

	// Hold mu until the start record is written so it is always the first line.
	mu.Lock()
	bridge := events.NewBridge(provider.Manager, provider.NewEventSource(opts.HID), logger)
	sub, err := bridge.Listen(func(ev model.Event) {
		if opts.Only != "" && ev.Kind != opts.Only {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if err := lw.Write(ev); err != nil {
			logger.Warnw("write event", "error", err)
			return
		}
		eventCount++
	})
	if err != nil {
		mu.Unlock()
		return err
	}
	defer sub.Cancel()

	start := time.Now()
	lw.Write(map[string]interface{}{
		"type": "start",
		"ts":   start.Unix(),
		"hid":  opts.HID,
	})
	mu.Unlock()

	runErr := provider.RunLoop.Run(ctx)
	if err := sub.Cancel(); err != nil {
		logger.Warnw("stop watching", "error", err)
	}

	mu.Lock()
	defer mu.Unlock()
	lw.Write(map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		"events":  eventCount,
	})
	return runErr
}
