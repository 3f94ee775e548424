package cli

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/integrations"
	"github.com/matzehuels/catalogprobe/pkg/integrations/catalog"
	"github.com/matzehuels/catalogprobe/pkg/probe"
)

// entryOpts holds the flags that locate a catalog entry.
type entryOpts struct {
	baseURL    string        // catalog base URL
	catalogID  string        // entry identifier
	timeout    time.Duration // catalog fetch timeout
	urlTimeout time.Duration // per URL check timeout
	headers    []string      // extra request headers, "Name: value"
}

func (o *entryOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.baseURL, "url", "u", "", "catalog base URL")
	cmd.Flags().StringVarP(&o.catalogID, "id", "i", "", "catalog entry identifier")
	cmd.Flags().DurationVarP(&o.timeout, "timeout", "t", defaultTimeout, "catalog fetch timeout")
	cmd.Flags().DurationVar(&o.urlTimeout, "url-timeout", defaultURLTimeout, "timeout for each URL check")
	cmd.Flags().StringArrayVarP(&o.headers, "header", "H", nil, `extra request header ("Name: value"), repeatable`)
}

func (o *entryOpts) headerMap() (map[string]string, error) {
	if len(o.headers) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(o.headers))
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid header %q: use \"Name: value\"", h)
		}
		m[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return m, nil
}

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	entryOpts
	config     string   // TOML check file
	keys       []string // keys that must carry a value
	urlKeys    []string // keys holding URLs that must respond 2xx
	dateKeys   []string // keys holding dates checked against thresholds
	dateFormat string   // strftime pattern for dateKeys
	warning    int      // months before WARNING
	critical   int      // months before CRITICAL
	jsonOut    bool     // print the report as JSON
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{dateFormat: probe.DefaultDateFormat}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run probe checks against a catalog entry",
		Long: `Fetch a catalog entry and run checks against it.

Checks come from a TOML file (--config), from flags, or both.

Examples:
  catalogprobe check -u https://catalog.example.org/api/services -i my-service --key description
  catalogprobe check -u https://catalog.example.org/api/services -i my-service --url-key logo_url
  catalogprobe check -u https://catalog.example.org/api/services -i my-service \
      --date-key last_updated --warning 6 --critical 12
  catalogprobe check --config probe.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), cmd, cfg, opts.jsonOut)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML check file")
	cmd.Flags().StringArrayVar(&opts.keys, "key", nil, "key that must carry a value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.urlKeys, "url-key", nil, "key holding a URL that must respond 2xx (repeatable)")
	cmd.Flags().StringArrayVar(&opts.dateKeys, "date-key", nil, "key holding a date to age-check (repeatable)")
	cmd.Flags().StringVar(&opts.dateFormat, "date-format", opts.dateFormat, "strftime format of --date-key values")
	cmd.Flags().IntVarP(&opts.warning, "warning", "w", 0, "age in months that raises WARNING (0 disables)")
	cmd.Flags().IntVarP(&opts.critical, "critical", "x", 0, "age in months that raises CRITICAL (0 disables)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")

	return cmd
}

// resolve merges the check file with the flags. Flags that were set
// explicitly override file values; flag checks are appended after file checks.
func (o *checkOpts) resolve(cmd *cobra.Command) (*probe.Config, error) {
	cfg := &probe.Config{}
	if o.config != "" {
		loaded, err := probe.LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("url") || cfg.BaseURL == "" {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("id") || cfg.CatalogID == "" {
		cfg.CatalogID = o.catalogID
	}
	if flags.Changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("url-timeout") || cfg.URLTimeout == 0 {
		cfg.URLTimeout = o.urlTimeout
	}

	headers, err := o.headerMap()
	if err != nil {
		return nil, err
	}
	if len(headers) > 0 && cfg.Headers == nil {
		cfg.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		cfg.Headers[k] = v
	}

	for _, k := range o.keys {
		cfg.Checks = append(cfg.Checks, probe.Check{Kind: probe.KindKey, Key: k})
	}
	for _, k := range o.urlKeys {
		cfg.Checks = append(cfg.Checks, probe.Check{Kind: probe.KindURL, Key: k})
	}
	for _, k := range o.dateKeys {
		cfg.Checks = append(cfg.Checks, probe.Check{
			Kind:     probe.KindAge,
			Key:      k,
			Format:   o.dateFormat,
			Warning:  o.warning,
			Critical: o.critical,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Checks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no checks given: use --key, --url-key, --date-key or --config")
	}
	return cfg, nil
}

func (c *CLI) runCheck(ctx context.Context, cmd *cobra.Command, cfg *probe.Config, jsonOut bool) error {
	logger := loggerFromContext(ctx)
	runner := probe.NewRunner(logger)
	entryURL := ""
	if cfg.BaseURL != "" && cfg.CatalogID != "" {
		entryURL = integrations.JoinURL(cfg.BaseURL, cfg.CatalogID)
	}

	logger.Debug("fetching catalog entry", "url", entryURL, "timeout", cfg.Timeout)
	prog := newProgress(logger)
	client, err := catalog.NewClient(ctx, cfg.BaseURL, cfg.CatalogID, cfg.Timeout,
		catalog.WithURLTimeout(cfg.URLTimeout),
		catalog.WithHeaders(cfg.Headers),
	)

	var report *probe.Report
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Debug("catalog fetch failed", "err", err)
		report = runner.FetchFailed(cfg.CatalogID, entryURL, err)
	} else {
		prog.done("fetched catalog entry", "keys", len(client.Document()))
		report = runner.Run(ctx, client, cfg.CatalogID, client.URL(), cfg.Checks)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
		}
	} else {
		printReport(out, report)
	}

	if report.Status != probe.OK {
		return &StatusError{Status: report.Status}
	}
	return nil
}
