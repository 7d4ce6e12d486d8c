// Package config loads the settings shared by the qvrp commands.
//
// Sources are layered: built-in defaults, then an optional YAML file, then
// environment variables, then command-line flags (applied by the commands).
//
// Environment variables:
//
//	QVRP_LOG_LEVEL       trace, debug, info, warn, error or crit
//	QVRP_ARCHIVE         path of the run archive
//	DWAVE_API_ENDPOINT   SAPI endpoint URL
//	DWAVE_API_TOKEN      SAPI token
//	DWAVE_API_SOLVER     solver used by the direct sampler
//	DWAVE_HYBRID_SOLVER  solver used by the hybrid sampler
package config
