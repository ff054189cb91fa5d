// Package cli holds the pieces shared by e2mcheck commands: typed errors
// that map to exit codes, and rendering of results as tables, JSON or YAML.
//
// # Exit codes
//
// Commands return a *CheckFailedError when a verification ran and came out
// false, and a *ConnectionError when the store could not be reached.
// cmd.Execute maps those to exit codes 2 and 3 so that test runners can tell
// a failed assertion apart from a broken environment.
//
// # Output formats
//
//   - table: go-pretty table, rounded style
//   - json: indented JSON
//   - yaml: YAML converted from the JSON form
package cli
