// Package integrations provides HTTP clients for remote catalog APIs.
//
// # Overview
//
// The [Client] type holds the shared HTTP plumbing; each remote API gets
// its own subpackage:
//
//   - [catalog]: catalog entries fetched by identifier
//
// # Client Pattern
//
//	client, err := catalog.NewClient(ctx, "https://catalog.example.org/api", "my-service", 10*time.Second)
//	if err != nil {
//	    // *errors.FetchError: status, transport, or decode failure
//	}
//	ok := client.HasKey("description")
//
// Requests are issued exactly once. There is no caching and no retry: a
// failed request surfaces immediately as an [errors.FetchError] whose cause
// matches [ErrNotFound] for 404 responses and [ErrNetwork] for every other
// transport or status failure.
//
// [catalog]: github.com/matzehuels/catalogprobe/pkg/integrations/catalog
// [errors.FetchError]: github.com/matzehuels/catalogprobe/pkg/errors.FetchError
package integrations
