package atmgo

type Config struct {
	Snapshot struct {
		Path string `yaml:"path"`
	} `yaml:"snapshot"`
	Banks    []string `yaml:"banks"`
	Accounts struct {
		MaxGenAttempts int `yaml:"max_gen_attempts"`
	} `yaml:"accounts"`
}

// DefaultConfig mirrors the knobs of the original simulator: the three
// built-in institutions and a snapshot file in the working directory.
func DefaultConfig() Config {
	var cfg Config
	cfg.Snapshot.Path = "atm_data.json"
	cfg.Banks = []string{"SBI", "BOB", "PNB"}
	cfg.Accounts.MaxGenAttempts = 100
	return cfg
}
