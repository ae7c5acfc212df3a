package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/types"
)

func newEndpointsCmd(a *app) *cobra.Command {
	var tierName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"ls"},
		Short:   "List catalog endpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := parseTier(tierName)
			if err != nil {
				return err
			}
			eps, err := a.store.List(cmd.Context(), tier)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), eps)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tTIER\tMETHOD\tPATH\tPARAMS")
			for _, ep := range eps {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", ep.ID, ep.Category, ep.Method, ep.Path, len(ep.Parameters))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&tierName, "tier", "t", "", "Only list one tier: basique, pro or entreprise")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print normalized endpoints as JSON")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	req := &types.SearchRequest{}

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search endpoints by name, path and parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = strings.Join(args, " ")
			if req.Tier != "" {
				if _, err := parseTier(req.Tier); err != nil {
					return err
				}
			}

			resp, err := a.search.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tSCORE\tTIER\tPATH")
			for _, r := range resp.Results {
				fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", r.Endpoint.ID, r.Score, r.Endpoint.Tier, r.Endpoint.Path)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if resp.Total > len(resp.Results) {
				cmd.PrintErrf("%d of %d matches shown\n", len(resp.Results), resp.Total)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Tier, "tier", "t", "", "Only search one tier")
	flags.StringVarP(&req.Method, "method", "m", "", "Only search one HTTP method")
	flags.IntVarP(&req.Limit, "limit", "n", 0, "Maximum number of results")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe <endpoint-id>",
		Short: "Show an endpoint's parameters and a sample curl command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ep)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", ep.Name, ep.ID)
			fmt.Fprintf(out, "%s %s%s  [%s]\n", ep.Method, explorer.APIPrefix, ep.Path, ep.Category)
			if ep.Summary != "" {
				fmt.Fprintf(out, "\n%s\n", ep.Summary)
			}

			if len(ep.Parameters) > 0 {
				fmt.Fprintln(out)
				tw := newTable(out)
				fmt.Fprintln(tw, "PARAM\tTYPE\tREQUIRED\tRESET\tOPTIONS")
				for _, p := range ep.Parameters {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", p.Name, p.DisplayType, p.Required, p.Default, strings.Join(p.Options, "|"))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "\n%s\n", explorer.RenderCurl(a.executor.BaseURL(), ep, ""))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the normalized endpoint as JSON")
	return cmd
}

func parseTier(s string) (client.Tier, error) {
	if s == "" {
		return "", nil
	}
	tier, ok := client.ParseTier(s)
	if !ok {
		return "", fmt.Errorf("unknown tier %q (use basique, pro or entreprise)", s)
	}
	return tier, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
