// Package config provides centralized configuration management for metadash.
// It loads configuration from multiple sources, validates it, and exposes a
// type-safe API to the commands and the dashboard server.
//
// # Configuration Sources
//
// Configuration is assembled in the following order, later sources winning:
//
//	1. Default values
//	2. A YAML file (--config, or metadash.yaml / config.yaml / configs/config.yaml)
//	3. Environment variables
//	4. Command line flags (applied by cmd/metadash)
//
// # Environment Variables
//
// All environment variables follow the pattern METADASH_<SECTION>_<FIELD>:
//
//	METADASH_DATASET_PATH=/data/metadata.csv
//	METADASH_DATASET_BATCH_MAX_ROWS=10000
//	METADASH_SERVER_PORT=8501
//	METADASH_LOGGING_LEVEL=debug
//	METADASH_TELEMETRY_TRACE_EXPORTER=stdout
//
// # YAML Example
//
//	dataset:
//	  path: metadata.csv
//	  dashboard_max_rows: 5000
//	report:
//	  output_dir: charts
//	server:
//	  port: 8501
//	  read_timeout: 15s
//
// # Paths
//
// ResolvePaths converts the dataset, report and log locations to absolute
// paths. Artifact and download names live in constants.go.
package config
