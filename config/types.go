package config

// CalculatorConfig selects the distance model used for estimates
type CalculatorConfig struct {
	Method string `yaml:"method" validate:"omitempty,oneof=empirical theoretical"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format    string `yaml:"format" validate:"omitempty,oneof=text json vespawatch waarneming observatoire"`
	Codespace string `yaml:"codespace" validate:"omitempty,max=64"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// MetricsConfig contains Prometheus export settings
type MetricsConfig struct {
	Textfile string `yaml:"textfile" validate:"omitempty,endswith=.prom"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Calculator CalculatorConfig `yaml:"calculator"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}
