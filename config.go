package nestlocator

import (
	"errors"
	"io/fs"

	"github.com/jyjeanne/hornet-nest-locator/config"
)

// LoadConfig loads the configuration at path. With an empty path the default
// locations are searched and config.Default is used when none exists.
func LoadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	err := config.LoadAppConfig()
	switch {
	case err == nil:
		return config.Config, nil
	case errors.Is(err, fs.ErrNotExist):
		return config.Default(), nil
	default:
		return config.AppConfig{}, err
	}
}
