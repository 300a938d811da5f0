// Package config provides centralized configuration management for the
// purchasing dashboard. It loads configuration from several sources,
// validates it and exposes a typed Config to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML configuration file
//  3. Default values (lowest priority)
//
// The file is taken from PULSE_CONFIG_FILE, or else the first of
// config.yaml, configs/config.yaml and ../configs/config.yaml that exists.
//
// # Environment Variables
//
// All environment variables follow the pattern PULSE_<SECTION>_<FIELD>:
//
//	PULSE_SERVER_PORT=8080
//	PULSE_DATASET_PATH="/data/Base BI.csv"
//	PULSE_DATASET_COLUMNS_PLANT=Plant
//	PULSE_DASHBOARD_TOP_N=15
//	PULSE_LOGGING_LEVEL=debug
//
// Fields carry split_words tags rather than envconfig names, so an unprefixed
// variable such as PATH or PORT is never picked up by accident.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use Default() for a configuration that needs no environment or files.
package config
