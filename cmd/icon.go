package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/inputsource/internal/icon"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/spf13/cobra"
)

var iconCmd = &cobra.Command{
	Use:   "icon <id>",
	Short: "Export an input source's icon as PNG",
	Long: `Decode the icon image of the input source with the given ID and write it
as PNG. Without --output the PNG is written to stdout.

Examples:
  inputsource icon com.apple.keylayout.German --output german.png
  inputsource icon com.apple.keylayout.US --size 64 > us.png`,
	Args: cobra.ExactArgs(1),
	RunE: runIcon,
}

func init() {
	rootCmd.AddCommand(iconCmd)
	iconCmd.Flags().StringP("output", "o", "", "Write PNG to file instead of stdout")
	iconCmd.Flags().Int("size", 0, "Scale so the longer side is this many pixels (0 = original)")
}

func runIcon(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	size, _ := cmd.Flags().GetInt("size")

	if outPath == "" {
		return exportIcon(provider.Manager, args[0], size, os.Stdout)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := exportIcon(provider.Manager, args[0], size, f); err != nil {
		f.Close()
		os.Remove(outPath)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	logger.Infow("wrote icon", "id", args[0], "path", outPath)
	return nil
}

func exportIcon(m platform.InputSourceManager, id string, size int, w io.Writer) error {
	src, err := m.InputSource(id)
	if err != nil {
		return err
	}
	if src.IconImageURL == "" {
		if src.HasIconRef {
			return fmt.Errorf("%s: %w (only an IconRef is available)", id, icon.ErrNoIcon)
		}
		return fmt.Errorf("%s: %w", id, icon.ErrNoIcon)
	}

	img, err := icon.Load(src.IconImageURL)
	if err != nil {
		return err
	}
	return icon.WritePNG(w, icon.Scale(img, size))
}
