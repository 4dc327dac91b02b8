package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// LogLevel overrides logging.level from the config file when set.
// LogLevel 设置后覆盖配置文件中的 logging.level。
var LogLevel string
