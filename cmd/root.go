package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/inputsource/internal/config"
	"github.com/mj1618/inputsource/internal/logging"
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "inputsource",
	Short: "Query, switch and watch macOS keyboard input sources",
	Long: `A CLI for the macOS Text Input Source Services.

It lists the keyboard layouts, input methods and palettes the system knows
about, reports and changes the selected one, and streams input source
changes and keyboard HID input values as JSONL.`,
	SilenceUsage: true,
}

var (
	// cfg holds the loaded config file merged over the defaults.
	cfg = config.Default()

	// logger is replaced in PersistentPreRunE once --debug is known.
	logger = zap.NewNop().Sugar()
)

func Execute() {
	defer flushLogger()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json (default: yaml in a terminal, json when piped)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		log, err := logging.New(debug || cfg.Debug)
		if err != nil {
			return err
		}
		logger = log

		format, err := resolveFormat(rootCmd.PersistentFlags().Lookup("format").Value.String(), cfg.Format, output.IsOutputPiped())
		if err != nil {
			return err
		}
		output.OutputFormat = format
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		logger.Debugw("configured", "format", format, "config", configPath)
		return nil
	}
}

// flushLogger syncs whichever logger PersistentPreRunE installed.
func flushLogger() {
	_ = logger.Sync()
}

// resolveFormat picks the output format: the --format flag wins, then the
// config file, then yaml for a terminal or json when piped.
func resolveFormat(flag, configured string, piped bool) (output.Format, error) {
	switch {
	case flag != "":
		return output.ParseFormat(flag)
	case configured != "":
		return output.ParseFormat(configured)
	case piped:
		return output.FormatJSON, nil
	default:
		return output.FormatYAML, nil
	}
}
