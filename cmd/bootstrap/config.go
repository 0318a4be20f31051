package bootstrap

import (
	"therapy-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections splits a provided config.Config into the sections that
// single-concern constructors depend on.
var ConfigSections = fx.Provide(
	func(c config.Config) config.DBConfig { return c.DB },
	func(c config.Config) config.LogConfig { return c.Log },
	func(c config.Config) config.RedisConfig { return c.Redis },
)
