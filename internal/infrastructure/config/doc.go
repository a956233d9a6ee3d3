// Package config handles loading and validating HuertoHogar API configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (database DSN, JWT secret) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - The JWT signing secret is required; the service refuses to start without it
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
