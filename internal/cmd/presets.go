package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/noisetex/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available texture presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range preset.Names() {
		desc, _ := preset.Describe(name)
		if _, err := fmt.Fprintf(out, "%-8s %s\n", name, desc); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "\nprojections: %s\n", strings.Join(projectionNames(), ", "))
	return err
}
