package config

import (
	"fmt"
	"strings"
)

// validate checks the loaded configuration for the selected backend.
//
// The remote backend fails fast when either of its two required values is
// missing, enumerating every missing variable name in one error so the
// operator can fix them in a single pass.
func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return ErrEmptyDSN
		}
	case BackendRemote:
		var missing []string
		if strings.TrimSpace(c.Remote.EndpointURL) == "" {
			missing = append(missing, "REMOTE_ENDPOINT_URL")
		}
		if strings.TrimSpace(c.Remote.AccessKey) == "" {
			missing = append(missing, "REMOTE_ACCESS_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingRemoteValues, strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	return nil
}
