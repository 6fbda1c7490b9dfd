// Package config loads process settings and wingman profiles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lab1702/wingman/wingman"
)

// EnvPrefix is the prefix of environment overrides, e.g. WINGMAN_ADDR or
// WINGMAN_SCENARIO_WINGMEN.
const EnvPrefix = "WINGMAN"

// ScenarioSettings size the reference simulation.
type ScenarioSettings struct {
	Wingmen      int           `json:"wingmen" mapstructure:"wingmen"`
	Hostiles     int           `json:"hostiles" mapstructure:"hostiles"`
	Seed         uint64        `json:"seed" mapstructure:"seed"`
	RespawnDelay time.Duration `json:"respawnDelay" mapstructure:"respawnDelay"`
	ArenaRadius  float64       `json:"arenaRadius" mapstructure:"arenaRadius"`
	// WingmanState is the state wingmen start in.
	WingmanState string `json:"wingmanState" mapstructure:"wingmanState"`
}

// Settings holds the process configuration.
type Settings struct {
	Addr         string           `json:"addr" mapstructure:"addr"`
	TickRate     int              `json:"tickRate" mapstructure:"tickRate"`
	LogLevel     string           `json:"logLevel" mapstructure:"logLevel"`
	ProfilesFile string           `json:"profilesFile" mapstructure:"profilesFile"`
	Scenario     ScenarioSettings `json:"scenario" mapstructure:"scenario"`
}

// TickInterval is the simulation step implied by TickRate.
func (s *Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("tickRate", 20)
	v.SetDefault("logLevel", "info")
	v.SetDefault("profilesFile", "")

	v.SetDefault("scenario.wingmen", 3)
	v.SetDefault("scenario.hostiles", 4)
	v.SetDefault("scenario.seed", 1)
	v.SetDefault("scenario.respawnDelay", "5s")
	v.SetDefault("scenario.arenaRadius", 1500.0)
	v.SetDefault("scenario.wingmanState", "follow")
}

// LoadSettings reads settings from path (any format viper understands) on
// top of the defaults, then applies WINGMAN_* environment overrides. An
// empty path or a missing file leaves the defaults in place.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", s.TickRate)
	}
	if s.Scenario.Wingmen < 0 || s.Scenario.Hostiles < 0 {
		return fmt.Errorf("scenario counts must not be negative (wingmen=%d hostiles=%d)",
			s.Scenario.Wingmen, s.Scenario.Hostiles)
	}
	if s.Scenario.ArenaRadius <= 0 {
		return fmt.Errorf("scenario.arenaRadius must be positive, got %v", s.Scenario.ArenaRadius)
	}
	if _, err := wingman.ParseState(s.Scenario.WingmanState); err != nil {
		return fmt.Errorf("scenario.wingmanState: %w", err)
	}
	return nil
}
