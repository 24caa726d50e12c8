package cmd

import (
	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List input sources",
	Long: `List every input source the system knows about, or only the installed
(enabled) ones with --installed.

Examples:
  inputsource list --installed
  inputsource list --category keyboard --lang de
  inputsource list --selectable --text dvorak`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("installed", false, "Only list installed (enabled) sources")
	listCmd.Flags().String("category", "", "Filter by category: keyboard, palette, ink")
	listCmd.Flags().String("lang", "", "Filter by language tag (e.g. de, pt-BR)")
	listCmd.Flags().String("text", "", "Filter by substring of ID or name")
	listCmd.Flags().Bool("selectable", false, "Only list sources that can be selected")
	listCmd.Flags().Bool("enabled", false, "Only list enabled sources")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	installed, _ := cmd.Flags().GetBool("installed")
	category, _ := cmd.Flags().GetString("category")
	lang, _ := cmd.Flags().GetString("lang")
	text, _ := cmd.Flags().GetString("text")
	selectable, _ := cmd.Flags().GetBool("selectable")
	enabled, _ := cmd.Flags().GetBool("enabled")

	f, err := buildFilter(category, lang, text, selectable, enabled)
	if err != nil {
		return err
	}

	result, err := listSources(provider.Manager, installed, f)
	if err != nil {
		return err
	}
	return output.Print(result)
}
