package models

// Config is the persisted snowreport configuration.
type Config struct {
	Snowflake Snowflake `yaml:"snowflake"`
	Reports   Reports   `yaml:"reports"`
	Display   Display   `yaml:"display"`
}

// Snowflake holds the warehouse connection settings. The password value may
// be a literal, "keyring:" for OS keyring lookup, or an "enc:" ciphertext.
type Snowflake struct {
	Account   string `yaml:"account"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
	Warehouse string `yaml:"warehouse"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
}

// Reports configures where report plan definitions come from.
type Reports struct {
	Directory string `yaml:"directory"`
	GitURL    string `yaml:"git_url"`
	GitBranch string `yaml:"git_branch"`
	Cache     bool   `yaml:"cache"`
}

// Display configures terminal rendering.
type Display struct {
	PageSize int  `yaml:"page_size"`
	TopN     int  `yaml:"top_n"`
	NoColor  bool `yaml:"no_color"`
}

// DefaultConfig returns a config with rendering defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Reports: Reports{Cache: true},
		Display: Display{PageSize: 5, TopN: 10},
	}
}

// Normalize fills zero display values with defaults.
func (c *Config) Normalize() {
	if c.Display.PageSize <= 0 {
		c.Display.PageSize = 5
	}
	if c.Display.TopN <= 0 {
		c.Display.TopN = 10
	}
	if c.Reports.GitBranch == "" {
		c.Reports.GitBranch = "main"
	}
}
