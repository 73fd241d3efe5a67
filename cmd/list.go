package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/partminder/pkg/export"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tracked parts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text",
		fmt.Sprintf("output format (%s)", strings.Join(export.Formats, ", ")))
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	svc, logg, err := newService(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeService(svc, logg)
	return svc.List(listFormat)
}
