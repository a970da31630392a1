package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/spf13/cobra"

	"github.com/c360studio/mapfgraph/vocabulary/ma"
)

func vocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the MA predicates and their ontology IRIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PREDICATE\tIRI\tTYPE\tDESCRIPTION")
			fmt.Fprintln(w, "---------\t---\t----\t-----------")

			for _, predicate := range ma.Predicates() {
				meta := vocabulary.GetPredicateMetadata(predicate)
				if meta == nil {
					return fmt.Errorf("predicate %s is not registered", predicate)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					predicate,
					meta.StandardIRI,
					meta.DataType,
					meta.Description,
				)
			}
			return w.Flush()
		},
	}
}
