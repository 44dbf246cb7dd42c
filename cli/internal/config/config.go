// Package config loads the .overzetten.yaml configuration file and turns its
// per-DTO blocks into derivation targets.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/overzetten/overzetten/dto"
	"github.com/overzetten/overzetten/entity"
	"github.com/overzetten/overzetten/generator"
)

var AppFs = afero.NewOsFs()

// DTOBlock is one dto entry in the configuration file
type DTOBlock struct {
	Entity        string            `mapstructure:"entity"`
	Name          string            `mapstructure:"name"`
	Prefix        string            `mapstructure:"prefix"`
	Suffix        string            `mapstructure:"suffix"`
	Exclude       []string          `mapstructure:"exclude"`
	Include       []string          `mapstructure:"include"`
	Relationships bool              `mapstructure:"relationships"`
	Deep          bool              `mapstructure:"deep_relationships"`
	AllowExtra    bool              `mapstructure:"allow_extra"`
	Mapped        map[string]string `mapstructure:"mapped"`
	Defaults      map[string]any    `mapstructure:"defaults"`
}

// Config holds the application configuration
type Config struct {
	SchemaPath string     `mapstructure:"schema_path"`
	OutputPath string     `mapstructure:"output_path"`
	Package    string     `mapstructure:"package"`
	MinVersion string     `mapstructure:"min_version"`
	DTOs       []DTOBlock `mapstructure:"dtos"`
}

// LoadConfig loads configuration from the config file, environment and .env
// files
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".overzetten")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "overzetten"))

	viper.SetEnvPrefix("OVERZETTEN")
	viper.AutomaticEnv()

	viper.SetDefault("schema_path", "schema.esl")
	viper.SetDefault("output_path", "./generated")
	viper.SetDefault("package", "generated")

	// Missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	// .env.local wins over .env
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to the user config directory
func SaveConfig(cfg *Config) error {
	viper.Set("schema_path", cfg.SchemaPath)
	viper.Set("output_path", cfg.OutputPath)
	viper.Set("package", cfg.Package)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "overzetten")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(configPath, ".overzetten.yaml")
	return viper.WriteConfigAs(configFile)
}

// Targets converts the configured dto blocks into derivation targets against
// an introspected entity set. An empty dto list derives every concrete
// entity with the zero policy.
func (c *Config) Targets(set *entity.Set) ([]generator.Target, error) {
	if len(c.DTOs) == 0 {
		var targets []generator.Target
		for _, name := range set.EntityNames() {
			ent, _ := set.Entity(name)
			if ent.Abstract {
				continue
			}
			targets = append(targets, generator.Target{Entity: name})
		}
		return targets, nil
	}

	targets := make([]generator.Target, 0, len(c.DTOs))
	for _, block := range c.DTOs {
		target, err := block.target(set)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func (b DTOBlock) target(set *entity.Set) (generator.Target, error) {
	cfg := dto.Config{
		Exclude:              b.Exclude,
		Include:              b.Include,
		Name:                 b.Name,
		NamePrefix:           b.Prefix,
		NameSuffix:           b.Suffix,
		IncludeRelationships: b.Relationships,
		DeepRelationships:    b.Deep,
		Options:              dto.SchemaOptions{AllowExtra: b.AllowExtra},
	}

	if len(b.Mapped) > 0 {
		cfg.Mapped = make(map[string]dto.Override, len(b.Mapped))
		for attr, expr := range b.Mapped {
			t, err := dto.TypeFromExpr(set, expr)
			if err != nil {
				return generator.Target{}, fmt.Errorf("dto %q: invalid mapped type for %q: %w", b.Entity, attr, err)
			}
			cfg.Mapped[attr] = dto.TypeOverride(t)
		}
	}

	if len(b.Defaults) > 0 {
		cfg.Defaults = make(map[string]any, len(b.Defaults))
		for attr, value := range b.Defaults {
			cfg.Defaults[attr] = value
		}
	}

	return generator.Target{Entity: b.Entity, Config: cfg}, nil
}
