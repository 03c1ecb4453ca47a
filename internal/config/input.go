package config

import (
	"fmt"
	"os"

	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/output"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	config, err := ip.ParseFile(filename)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ParseFile reads and decodes a configuration without validating it, so
// callers can apply overrides first and then call ValidateConfiguration.
func (ip *InputParser) ParseFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Every error wraps
// domain.ErrConfiguration. A zero seed is accepted here; the engine replaces it.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	sim := config.SimulationConfig()
	if err := sim.Validate(); err != nil {
		return err
	}

	curves, err := config.Parameters.Curves()
	if err != nil {
		return err
	}
	if err := curves.Validate(sim); err != nil {
		return err
	}

	if err := config.AnalyticConfig().Validate(sim); err != nil {
		return err
	}

	return ip.validateOutput(&config.Output)
}

// validateOutput checks the optional report settings
func (ip *InputParser) validateOutput(out *domain.OutputSettings) error {
	if !output.IsSupportedFormat(out.Format) {
		return domain.NewConfigurationError("output.format", "unsupported format %q", out.Format)
	}
	return nil
}

// CreateExampleConfiguration returns the reference run: 100000 paths of 500
// steps of 0.01 years, r0 = 5%, phi = 0.0001, a = 0.1, sigma = 0.01.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Simulation: domain.SimulationSettings{
			InitialRate: decimal.NewFromFloat(0.05),
			TimeStep:    decimal.NewFromFloat(0.01),
			Steps:       500,
			Paths:       100000,
			Seed:        0,
			Workers:     1,
		},
		Parameters: domain.ParameterSettings{
			Phi:   domain.ConstantSpec(0.0001),
			A:     domain.ConstantSpec(0.1),
			Sigma: domain.ConstantSpec(0.01),
		},
		Analytic: domain.AnalyticSettings{
			ValuationTime:   decimal.Zero,
			SpotRate:        domain.SpotRateSimulated,
			QuadratureNodes: 64,
		},
		Output: domain.OutputSettings{
			Format: "console",
		},
	}
}
