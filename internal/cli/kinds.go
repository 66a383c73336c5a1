package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/spf13/cobra"
)

// newKindsCommand creates the kinds command.
func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List task kinds per reference type",
		Long: `List the task kinds applicable to each reference type.

Kinds are shown in reconciliation order: assign-by-reference processes
them in this order and creates missing ones in this order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printKinds(cmd.OutOrStdout())
			return nil
		},
	}
}

func printKinds(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "REFERENCE TYPE\tKINDS")
	for _, ref := range domain.AllReferenceTypes() {
		kinds := domain.KindsFor(ref)
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", ref, strings.Join(names, ", "))
	}
}
