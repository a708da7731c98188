// Package config provides the configuration structure for phishscore and
// the loaders that populate it.
//
// Values are resolved in this order, later sources overriding earlier ones:
//
//  1. Defaults from NewConfig
//  2. The YAML file .phishscore (explicit path, current directory, then home)
//  3. Environment variables, optionally loaded from a .env file
//  4. Command-line flags
package config
