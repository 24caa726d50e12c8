package cmd

import (
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one input source by ID",
	Long: `Show the input source whose ID matches exactly.

Example:
  inputsource get com.apple.keylayout.US`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	src, err := provider.Manager.InputSource(args[0])
	if err != nil {
		return err
	}
	return output.Print(src)
}
