package cmd

import (
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Switch to an input source",
	Long: `Make the input source with the given ID the selected one and print the
source that was selected before and after the switch.

An ID that matches no input source is an error; nothing is changed.

Example:
  inputsource select com.apple.keylayout.German`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	result, err := selectSource(provider.Manager, args[0])
	if err != nil {
		return err
	}
	return output.Print(result)
}
