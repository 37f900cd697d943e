// Package config provides configuration management for the BOM merger.
//
// It uses Viper for defaults and environment variables, and godotenv to load
// an optional .env file. Defaults are declared on the section structs with
// `default` tags and registered by reflection, so every key can be overridden
// with SECTION_KEY environment variables.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Database: sqlite or MySQL connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Mapping: default column names, designator delimiter, suppression prefixes
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.Mapping.Options()
package config
