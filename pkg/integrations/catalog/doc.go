// Package catalog provides an HTTP client for a single catalog entry.
//
// # Overview
//
// A catalog service exposes one JSON object per entry under
// {base_url}/{catalog_id}. [NewClient] fetches that object once and keeps it;
// every check afterwards reads the held [Document].
//
// # Usage
//
//	client, err := catalog.NewClient(ctx, "https://catalog.example.org/api/services", "my-service", 10*time.Second)
//	if err != nil {
//	    return err // *errors.FetchError
//	}
//
//	client.HasKey("description")                 // present and non-empty
//	client.IsURLValid(ctx, "logo_url")           // GET returns 2xx
//	client.AgeInMonths("last_updated", "%Y-%m-%d") // calendar months since the date
//
// # Checks
//
//   - [Client.HasKey] follows truthiness rules: null, false, "", 0, [] and {}
//     count as absent.
//   - [Client.IsURLValid] returns an error, not false, when the URL fails.
//   - [Client.AgeInMonths] counts calendar months and ignores the day of
//     month. 2023-01-31 is one month old on 2023-02-01.
package catalog
