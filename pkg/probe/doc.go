// Package probe turns catalog checks into monitoring probe states.
//
// A probe run takes a fetched catalog entry (anything implementing
// [Catalog]) and a list of [Check] values, runs the checks in order, and
// returns a [Report] whose [Status] is the worst individual outcome. Status
// values double as process exit codes: OK=0, WARNING=1, CRITICAL=2,
// UNKNOWN=3.
//
// Outcome mapping:
//
//   - key: CRITICAL when the key is missing or holds an empty value
//   - url: CRITICAL when the URL fetch fails, UNKNOWN for lookup errors
//   - age: WARNING/CRITICAL past the month thresholds, UNKNOWN when the date
//     cannot be read
//
// Checks can be loaded from a TOML file with [LoadConfig].
package probe
