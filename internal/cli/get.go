package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/integrations/catalog"
)

// getCommand creates the get command, which prints a fetched entry.
func (c *CLI) getCommand() *cobra.Command {
	var opts entryOpts

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print a catalog entry or one of its values as JSON",
		Example: `  catalogprobe get -u https://catalog.example.org/api/services -i my-service
  catalogprobe get -u https://catalog.example.org/api/services -i my-service logo_url`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := opts.headerMap()
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			client, err := catalog.NewClient(cmd.Context(), opts.baseURL, opts.catalogID, opts.timeout,
				catalog.WithHeaders(headers))
			if err != nil {
				return err
			}
			prog.done("fetched catalog entry", "url", client.URL())

			var v any = client.Document()
			if len(args) == 1 {
				val, ok := client.Lookup(args[0])
				if !ok {
					return errors.New(errors.ErrCodeKeyNotFound, "key %q not in catalog entry %s", args[0], client.CatalogID())
				}
				v = val
			}

			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode entry")
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write entry")
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
