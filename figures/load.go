package figures

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fornellas/l2g/compiler"
	"github.com/fornellas/l2g/geom"
)

type figureConfig struct {
	Name              string            `mapstructure:"name"`
	Description       string            `mapstructure:"description"`
	Axiom             string            `mapstructure:"axiom"`
	Rules             map[string]string `mapstructure:"rules"`
	Iterations        int               `mapstructure:"iterations"`
	StepSize          float64           `mapstructure:"step_size"`
	AngleIncrementDeg float64           `mapstructure:"angle_increment_deg"`
	InitAngleDeg      float64           `mapstructure:"init_angle_deg"`
	FeedRate          float64           `mapstructure:"feed_rate"`
}

// LoadFile reads user-defined figures from a YAML file with a top-level "figures" list. Angles are
// given in degrees there, which is friendlier to write than radians. Every figure's grammar is
// validated before returning, so a typo in a rule fails the load, not a later compile.
func LoadFile(path string) ([]Figure, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading figures file: %w", err)
	}

	var configs []figureConfig
	if err := v.UnmarshalKey("figures", &configs); err != nil {
		return nil, fmt.Errorf("parsing figures file: %w", err)
	}

	loaded := make([]Figure, 0, len(configs))
	for _, config := range configs {
		if config.Name == "" {
			return nil, fmt.Errorf("%s: figure with no name", path)
		}
		figure := Figure{
			Name:        config.Name,
			Description: config.Description,
			Axiom:       config.Axiom,
			Rules:       config.Rules,
			Params: compiler.Params{
				Iterations:     config.Iterations,
				AngleIncrement: geom.DegToRad(config.AngleIncrementDeg),
				StepSize:       config.StepSize,
				InitAngle:      geom.DegToRad(config.InitAngleDeg),
				FeedRate:       config.FeedRate,
			},
		}
		if _, err := figure.System(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		loaded = append(loaded, figure)
	}
	return loaded, nil
}
