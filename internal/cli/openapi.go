package cli

import (
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/insightone/insightone-mcp/internal/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the catalog as an OpenAPI 3 document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eps, err := a.store.List(cmd.Context(), "")
			if err != nil {
				return err
			}

			doc := openapi.Build(a.executor.BaseURL(), eps)
			if err := doc.Validate(cmd.Context()); err != nil {
				cmd.PrintErrf("Warning: %s\n", err)
			}

			data, err := openapi.Marshal(doc, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			cmd.PrintErrf("Wrote %d operations to %s\n", countOperations(doc), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func countOperations(doc *openapi3.T) int {
	n := 0
	for _, item := range doc.Paths.Map() {
		n += len(item.Operations())
	}
	return n
}
