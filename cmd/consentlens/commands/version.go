package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/display"
	"github.com/teranos/consentlens/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show consentlens version information",
	Long:  `Display version, build time, commit hash, platform and the model bundle formats this binary can load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := display.FormatFromCommand(cmd)
		if err != nil {
			return err
		}
		info := version.Get()
		if format != display.FormatTable {
			return display.Encode(cmd.OutOrStdout(), info, format)
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\n", info.Platform)
		fmt.Fprintf(cmd.OutOrStdout(), "Go: %s\n", info.GoVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "Bundle formats: %s\n", info.BundleFormats)
		return nil
	},
}

func init() {
	addFormatFlags(VersionCmd)
}
