package config

import "os"

// EnvPrefix prefixes every environment variable keyview reads.
const EnvPrefix = "KEYVIEW_"

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]func(*Config, string){
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) { c.Log.Level = v },
	EnvPrefix + "LOG_FILE":  func(c *Config, v string) { c.Log.File = v },
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFunc(os.LookupEnv)
}

// ApplyEnvFunc overrides settings from lookup and revalidates.
func (c *Config) ApplyEnvFunc(lookup func(string) (string, bool)) error {
	for name, set := range envMapping {
		if v, ok := lookup(name); ok {
			set(c, v)
		}
	}
	return c.Validate()
}
