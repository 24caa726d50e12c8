package cmd

import (
	"runtime"

	"github.com/mj1618/inputsource/internal/output"
	"github.com/mj1618/inputsource/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(versionInfo{
			Version:   version.Version,
			Commit:    version.Commit,
			BuildDate: version.BuildDate,
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		})
	},
}

type versionInfo struct {
	Version   string `yaml:"version"    json:"version"`
	Commit    string `yaml:"commit"     json:"commit"`
	BuildDate string `yaml:"build_date" json:"build_date"`
	Platform  string `yaml:"platform"   json:"platform"`
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
