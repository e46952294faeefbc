package workspace

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognisys/mindspace/gate"
)

// ErrInvalidConfig wraps all configuration validation failures so callers can
// detect them with errors.Is.
var ErrInvalidConfig = errors.New("invalid workspace config")

// Config defines the arbitration policy constants. Values outside their valid
// ranges are rejected at startup with a descriptive error; the workspace
// never silently clamps them.
//
// Decay is a fixed subtractive step per non-ignited cycle. The step scheme is
// part of the contract: persistence run lengths are linear in
// (1 - ActivationFloor) / DecayStep.
type Config struct {
	// IgnitionThreshold is the gated score a winner must reach to ignite.
	// Must be > 0; the hard cutoff models a nonlinear commit.
	IgnitionThreshold float64 `yaml:"ignition_threshold"`

	// DecayStep is subtracted from the active content's activation on every
	// cycle without re-ignition. Must be > 0.
	DecayStep float64 `yaml:"decay_step"`

	// ActivationFloor clears the content once activation falls to or below
	// it. Must be >= 0 and < 1.
	ActivationFloor float64 `yaml:"activation_floor"`

	// FocusBias multiplies gated scores of proposals matching the current
	// focus concept. Must be > 0; 1.0 disables the bias.
	FocusBias float64 `yaml:"focus_bias"`

	// Weights are the base gate multipliers. Each must be >= 0 and at least
	// one must be positive.
	Weights gate.Weights `yaml:"gate_weights"`

	// MaxProposalsPerModule caps each module's batch per cycle. Must be > 0.
	MaxProposalsPerModule int `yaml:"max_proposals_per_module"`

	// ProposeTimeout bounds the concurrent proposal collection phase. Zero
	// disables the deadline.
	ProposeTimeout time.Duration `yaml:"propose_timeout"`

	// HistoryLimit bounds the default history store (0 = unbounded).
	HistoryLimit int `yaml:"history_limit"`
}

// DefaultConfig provides baseline policy values suitable for tests and
// simulation runs.
var DefaultConfig = Config{
	IgnitionThreshold:     0.6,
	DecayStep:             0.15,
	ActivationFloor:       0,
	FocusBias:             1.3,
	Weights:               gate.Weights{Evidence: 0.5, Salience: 0.3, Urgency: 0.2},
	MaxProposalsPerModule: 4,
	ProposeTimeout:        2 * time.Second,
	HistoryLimit:          256,
}

// Validate rejects out-of-range values with a descriptive error wrapping
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.IgnitionThreshold <= 0 {
		return fmt.Errorf("%w: ignition_threshold must be > 0, got %v", ErrInvalidConfig, c.IgnitionThreshold)
	}
	if c.DecayStep <= 0 {
		return fmt.Errorf("%w: decay_step must be > 0, got %v", ErrInvalidConfig, c.DecayStep)
	}
	if c.ActivationFloor < 0 || c.ActivationFloor >= 1 {
		return fmt.Errorf("%w: activation_floor must be in [0, 1), got %v", ErrInvalidConfig, c.ActivationFloor)
	}
	if c.FocusBias <= 0 {
		return fmt.Errorf("%w: focus_bias must be > 0, got %v", ErrInvalidConfig, c.FocusBias)
	}
	if c.Weights.Evidence < 0 || c.Weights.Salience < 0 || c.Weights.Urgency < 0 {
		return fmt.Errorf("%w: gate weights must be >= 0, got %+v", ErrInvalidConfig, c.Weights)
	}
	if c.Weights.Evidence == 0 && c.Weights.Salience == 0 && c.Weights.Urgency == 0 {
		return fmt.Errorf("%w: at least one gate weight must be positive", ErrInvalidConfig)
	}
	if c.MaxProposalsPerModule <= 0 {
		return fmt.Errorf("%w: max_proposals_per_module must be > 0, got %d", ErrInvalidConfig, c.MaxProposalsPerModule)
	}
	if c.ProposeTimeout < 0 {
		return fmt.Errorf("%w: propose_timeout must be >= 0, got %v", ErrInvalidConfig, c.ProposeTimeout)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%w: history_limit must be >= 0, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	return nil
}

// LoadConfig reads a YAML config file, fills unset fields from DefaultConfig
// and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig unmarshals YAML bytes over DefaultConfig and validates the
// result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
