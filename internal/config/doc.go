// Package config holds the configuration surface for subscan.
//
// All tunables live here: the CLI-overridable settings (input path, report
// paths, worker counts, verbosity) as a flat Config struct, and the fixed
// process-wide constants (timeouts, truncation caps, parser match limits)
// as package-level constants. The Config is constructed once at startup and
// threaded through every component; there is no hidden global state.
package config
