package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vynal-docs/vynal/internal/formats"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{skipBootstrap: "true"},
	Args:        cobra.NoArgs,
	Run:         runVersion,
}

var versionDetails bool

func init() {
	versionCmd.Flags().BoolVar(&versionDetails, "details", false, "Also print build platform and output formats")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	cmd.Printf("vynal version %s\n", version)
	if !versionDetails {
		return
	}

	names := make([]string, 0, 3)
	for _, f := range formats.NewDefaultRegistry().Formats() {
		names = append(names, f.String())
	}
	cmd.Printf("  go:       %s\n", runtime.Version())
	cmd.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	cmd.Printf("  formats:  %s\n", strings.Join(names, ", "))
}
