/*
main.go - Application entry point

PURPOSE:
  Command line for the shift-hours accounting engine: runs the HTTP server
  and offers offline helpers for quick checks without a database.

COMMANDS:
  serve       Start the HTTP API (and the month-close scheduler if enabled)
  metrics     Compute HE, HCP and HAC for one month from the command line
  chain       Compute consecutive months, carrying HAC forward as SA
  duration    Hours between two hhmm clocks, with the night flag
  init-config Write a default configuration file
  version     Print the build version

STARTUP SEQUENCE (serve):
  1. Load configuration (TOML file, .env, SHIFTHOURS_* variables)
  2. Initialize SQLite store
  3. Create accounting service with unit defaults
  4. Configure HTTP router
  5. Start scheduler if enabled
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

EXAMPLES:
  shift-hours serve --config ./config.toml
  shift-hours metrics --ht 192 --standard 180 --percentage 70 --sa 3.5
  shift-hours chain --from 2025-01 --standard 180 --percentage 50 200 170 190
  shift-hours duration 2200 0600

SEE ALSO:
  - config/config.go: Configuration sources and precedence
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"fmt"
	"os"
)

var (
	// Version is set at build time
	Version = "dev"
)

func main() {
	if err := NewApp().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
