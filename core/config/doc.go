// Package config provides configuration management for the NFT toolkit.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit, metrics)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: connection of the state database (sqlite, mysql, postgres)
//   - Store: state backend selection and Redis settings
//   - Upload: upload backend, batch size and object prefixes
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Upload.BatchSize)
package config
