package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/catalogprobe/pkg/errors"
	"github.com/matzehuels/catalogprobe/pkg/observability"
)

// Catalog is the set of checks a fetched catalog entry supports.
// It is satisfied by *catalog.Client.
type Catalog interface {
	HasKey(key string) bool
	IsURLValid(ctx context.Context, key string) (bool, error)
	AgeInMonths(key, dateFormat string) (int, error)
}

// Runner executes checks against a catalog entry and collects a [Report].
//
// Checks run one after another in the order given. A failing check never
// stops the run; each outcome lands in its own [Result].
type Runner struct {
	Logger *log.Logger
	newID  func() string
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Logger: logger,
		newID:  func() string { return uuid.NewString() },
	}
}

// Run executes checks against cat. catalogID and url only label the report.
func (r *Runner) Run(ctx context.Context, cat Catalog, catalogID, url string, checks []Check) *Report {
	start := time.Now()
	report := &Report{
		RunID:     r.newID(),
		CatalogID: catalogID,
		URL:       url,
		Status:    OK,
		Results:   make([]Result, 0, len(checks)),
	}

	hooks := observability.Probe()
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			report.add(Result{Check: c.Label(), Kind: c.Kind, Key: c.Key, Status: Unknown, Message: err.Error()})
			continue
		}
		checkStart := time.Now()
		res := r.runCheck(ctx, cat, c)
		elapsed := time.Since(checkStart)
		r.Logger.Debug("check finished",
			"check", res.Check,
			"status", res.Status,
			"message", res.Message)
		hooks.OnCheckComplete(ctx, res.Check, string(res.Kind), res.Status.String(), elapsed)
		report.add(res)
	}

	report.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, catalogID, report.Status.String(), len(report.Results), report.Duration)
	r.Logger.Debug("probe finished",
		"run", report.RunID,
		"status", report.Status,
		"checks", len(report.Results),
		"duration", report.Duration.Round(time.Millisecond))
	return report
}

// FetchFailed builds a CRITICAL report for a catalog entry that could not be
// fetched.
func (r *Runner) FetchFailed(catalogID, url string, err error) *Report {
	status := Critical
	if !errors.Is(err, errors.ErrCodeFetchFailed) {
		status = Unknown
	}
	return &Report{
		RunID:     r.newID(),
		CatalogID: catalogID,
		URL:       url,
		Status:    status,
		Error:     errors.UserMessage(err),
	}
}

func (r *Runner) runCheck(ctx context.Context, cat Catalog, c Check) Result {
	res := Result{Check: c.Label(), Kind: c.Kind, Key: c.Key}

	switch c.Kind {
	case KindKey:
		if cat.HasKey(c.Key) {
			res.Status, res.Message = OK, fmt.Sprintf("key %q present", c.Key)
		} else {
			res.Status, res.Message = Critical, fmt.Sprintf("key %q missing or empty", c.Key)
		}

	case KindURL:
		ok, err := cat.IsURLValid(ctx, c.Key)
		switch {
		case errors.Is(err, errors.ErrCodeFetchFailed):
			res.Status, res.Message = Critical, err.Error()
		case err != nil:
			res.Status, res.Message = Unknown, errors.UserMessage(err)
		case ok:
			res.Status, res.Message = OK, fmt.Sprintf("URL under %q is reachable", c.Key)
		default:
			res.Status, res.Message = Critical, fmt.Sprintf("URL under %q is not valid", c.Key)
		}

	case KindAge:
		age, err := cat.AgeInMonths(c.Key, c.dateFormat())
		if err != nil {
			res.Status, res.Message = Unknown, errors.UserMessage(err)
			break
		}
		res.Months = &age
		res.Status = ageStatus(age, c.Warning, c.Critical)
		res.Message = fmt.Sprintf("%q is %d months old", c.Key, age)

	default:
		res.Status, res.Message = Unknown, fmt.Sprintf("unknown check kind %q", c.Kind)
	}
	return res
}

func ageStatus(age, warning, critical int) Status {
	switch {
	case critical > 0 && age >= critical:
		return Critical
	case warning > 0 && age >= warning:
		return Warning
	default:
		return OK
	}
}
