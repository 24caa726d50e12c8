package cmd

import (
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the selected keyboard input source",
	Long: `Show the currently selected keyboard input source.

With --layout, show the keyboard layout in use instead. When an input method
such as Pinyin is selected, the layout is the one it types through.`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().Bool("layout", false, "Show the current keyboard layout")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	layout, _ := cmd.Flags().GetBool("layout")

	src, err := currentSource(provider.Manager, layout)
	if err != nil {
		return err
	}
	return output.Print(src)
}
