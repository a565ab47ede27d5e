package fitdecode

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// configFile is the TOML shape accepted by LoadConfigFile.
type configFile struct {
	CheckCRC      *bool `toml:"check_crc"`
	KeepRawChunks *bool `toml:"keep_raw_chunks"`
	RetryBudget   int   `toml:"retry_budget"`
}

// LoadConfigFile reads a small TOML document and turns it into the Option
// list NewReader expects, for embedding apps that want decoder behavior
// externally configurable without recompiling.
//
//	check_crc = true
//	keep_raw_chunks = false
//	retry_budget = 64
func LoadConfigFile(path string) ([]Option, error) {
	var cf configFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("fitdecode: loading config file %q: %w", path, err)
	}

	var opts []Option
	if cf.CheckCRC != nil {
		if *cf.CheckCRC {
			opts = append(opts, WithCRCPolicy(CRCEnabled))
		} else {
			opts = append(opts, WithCRCPolicy(CRCReadOnly))
		}
	}
	if cf.KeepRawChunks != nil {
		opts = append(opts, WithRawChunks(*cf.KeepRawChunks))
	}
	if cf.RetryBudget > 0 {
		opts = append(opts, WithRetryBudget(cf.RetryBudget))
	}

	return opts, nil
}
