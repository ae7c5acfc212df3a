package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

type requestFlags struct {
	params []string
	token  string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "Parameter value as name=value (repeatable)")
	cmd.Flags().StringVar(&f.token, "token", "", "User token (default: $INSIGHTONE_USER_TOKEN)")
}

// form returns the endpoint with the flag values applied.
func (a *app) form(cmd *cobra.Command, id string, f *requestFlags) (*explorer.Endpoint, error) {
	values, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}
	ep, err := a.store.Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if unknown := ep.SetValues(values); len(unknown) > 0 {
		cmd.PrintErrf("ignoring unknown parameters: %s\n", strings.Join(unknown, ", "))
	}
	return ep, nil
}

func newCurlCmd(a *app) *cobra.Command {
	f := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "curl <endpoint-id>",
		Short: "Print the curl command for an endpoint call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := a.form(cmd, args[0], f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), explorer.RenderCurl(a.executor.BaseURL(), ep, a.token(f.token)))
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}

func newCallCmd(a *app) *cobra.Command {
	f := &requestFlags{}
	var jq string

	cmd := &cobra.Command{
		Use:   "call <endpoint-id>",
		Short: "Call an endpoint and print the response",
		Long: `Call an endpoint with its default values overridden by -p flags.

JSON responses are pretty-printed, CSV responses are printed as received.
The status line goes to stderr. A non-2xx status exits non-zero after the
error payload is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jq != "" {
				if err := a.query.ValidateExpression(jq); err != nil {
					return err
				}
			}
			ep, err := a.form(cmd, args[0], f)
			if err != nil {
				return err
			}

			res, err := a.executor.Run(cmd.Context(), ep, a.token(f.token))
			if err != nil {
				var missing *explorer.MissingTokenError
				if errors.As(err, &missing) {
					return fmt.Errorf("%w (pass --token or set INSIGHTONE_USER_TOKEN)", err)
				}
				return err
			}

			cmd.PrintErrf("%s %s -> %d (%d ms)\n", res.Method, res.URL, res.Status, res.DurationMs)
			if err := a.printResult(cmd, res, jq); err != nil {
				return err
			}
			if res.Failed() {
				return fmt.Errorf("request failed with status %d", res.Status)
			}
			return nil
		},
	}

	f.bind(cmd)
	cmd.Flags().StringVar(&jq, "jq", "", "jq expression applied to a JSON response")
	return cmd
}

func (a *app) printResult(cmd *cobra.Command, res *explorer.ExecutionResult, jq string) error {
	out := cmd.OutOrStdout()

	if text, ok := res.CSV(); ok {
		if jq != "" {
			cmd.PrintErrln("--jq ignored for a CSV response")
		}
		_, err := fmt.Fprint(out, text)
		return err
	}

	if jq == "" || res.Failed() {
		return writeJSON(out, res.Payload)
	}

	qr, err := a.query.QueryValue(res.Payload, jq)
	if err != nil {
		return err
	}
	return printQueryResult(cmd, qr)
}

// printQueryResult prints one JSON document per value, like jq does.
func printQueryResult(cmd *cobra.Command, qr *query.Result) error {
	for _, v := range qr.Values {
		if err := writeJSON(cmd.OutOrStdout(), v); err != nil {
			return err
		}
	}
	if qr.Truncated {
		cmd.PrintErrf("output truncated after %d values\n", qr.Count)
	}
	if len(qr.Errors) > 0 {
		return errors.New(strings.Join(qr.Errors, "; "))
	}
	return nil
}

// parseParams splits name=value pairs at the first '='. Values may be empty.
func parseParams(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}
