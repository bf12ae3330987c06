// config_keys.go provides key-value access to configuration settings for the
// CLI and MCP server, where settings are addressed by dotted keys such as
// "glob.platform".

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"glob.case_sensitive", "glob.platform", "glob.exclude", "glob.fail_on_io_errors",
		"snapshot.db",
		"limits.max_pattern",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

func orAuto(s string) string {
	if s == "" {
		return Auto
	}
	return s
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "glob.case_sensitive":
		return orAuto(c.Glob.CaseSensitive), nil
	case "glob.platform":
		return orAuto(c.Glob.Platform), nil
	case "glob.exclude":
		return strings.Join(c.Glob.Exclude, ","), nil
	case "glob.fail_on_io_errors":
		return strconv.FormatBool(c.FailOnIOErrors()), nil
	case "snapshot.db":
		return c.SnapshotDB(), nil
	case "limits.max_pattern":
		return strconv.Itoa(c.MaxPattern()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. The result is validated, so a
// rejected value leaves the config unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "glob.case_sensitive":
		next.Glob.CaseSensitive = strings.ToLower(value)
	case "glob.platform":
		next.Glob.Platform = strings.ToLower(value)
	case "glob.exclude":
		next.Glob.Exclude = nil
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				next.Glob.Exclude = append(next.Glob.Exclude, part)
			}
		}
	case "glob.fail_on_io_errors":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: glob.fail_on_io_errors must be true or false", ErrInvalidValue)
		}
		next.Glob.FailOnIOErrors = &b
	case "snapshot.db":
		next.Snapshot.DB = value
	case "limits.max_pattern":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_pattern must be a positive integer", ErrInvalidValue)
		}
		next.Limits.MaxPattern = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		out[k], _ = c.Get(k)
	}
	return out
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "glob.case_sensitive":
		return c.Glob.CaseSensitive != ""
	case "glob.platform":
		return c.Glob.Platform != ""
	case "glob.exclude":
		return len(c.Glob.Exclude) > 0
	case "glob.fail_on_io_errors":
		return c.Glob.FailOnIOErrors != nil
	case "snapshot.db":
		return c.Snapshot.DB != ""
	case "limits.max_pattern":
		return c.Limits.MaxPattern != nil
	default:
		return false
	}
}
