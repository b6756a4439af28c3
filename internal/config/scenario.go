package config

import (
	"io"

	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/iwvelando/event-viability/pkg/streams"
	"github.com/iwvelando/event-viability/pkg/validation"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ResolvedScenario pairs a scenario name with its fully merged parameters.
type ResolvedScenario struct {
	Name       string            `yaml:"name" json:"name"`
	Parameters engine.Parameters `yaml:"parameters" json:"parameters"`
}

// ScenarioParameters layers the scenario's overrides and mode over the common
// parameters. Unknown override keys are rejected.
func (c *Configuration) ScenarioParameters(s Scenario) (engine.Parameters, error) {
	p := c.Common
	if len(s.Overrides) > 0 {
		v := viper.New()
		if err := v.MergeConfigMap(s.Overrides); err != nil {
			return engine.Parameters{}, eris.Wrapf(err, "scenario %s: unable to read overrides", s.Name)
		}
		if err := v.UnmarshalExact(&p); err != nil {
			return engine.Parameters{}, eris.Wrapf(err, "scenario %s: unable to decode overrides", s.Name)
		}
	}
	if s.Mode != "" {
		p.Mode = engine.Mode(s.Mode)
	}

	mode, err := engine.ParseMode(string(p.Mode))
	if err != nil {
		return engine.Parameters{}, eris.Wrapf(err, "scenario %s", s.Name)
	}
	p.Mode = mode
	return p, nil
}

// ActiveScenarios resolves every active scenario, in configuration order.
func (c *Configuration) ActiveScenarios() ([]ResolvedScenario, error) {
	var resolved []ResolvedScenario
	for _, s := range c.Scenarios {
		if !s.Active {
			continue
		}
		p, err := c.ScenarioParameters(s)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, ResolvedScenario{Name: s.Name, Parameters: p})
	}
	return resolved, nil
}

// FindScenario looks up a scenario by name, active or not.
func (c *Configuration) FindScenario(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// WriteResolved writes the merged parameters of every active scenario as YAML.
func (c *Configuration) WriteResolved(w io.Writer) error {
	resolved, err := c.ActiveScenarios()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(resolved); err != nil {
		return eris.Wrap(err, "unable to encode resolved scenarios")
	}
	return eris.Wrap(enc.Close(), "unable to flush resolved scenarios")
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	var scenarios []validation.ScenarioConfig
	for _, s := range c.Scenarios {
		p, err := c.ScenarioParameters(s)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		h := p.Horizon
		if p.Mode.CollapsesTimeline() {
			h = h.Collapsed()
		}
		scenarios = append(scenarios, validation.ScenarioConfig{
			Name:                 s.Name,
			Active:               s.Active,
			IncludesConstruction: p.Mode.Includes(streams.ConstructionSalesTax),
			CurrentYear:          h.CurrentYear,
			EventYear:            h.EventYear,
			DiscountRate:         h.Rate,
			PrivateSharePct:      p.Costs.PrivateSharePct,
			CrowdOutPct:          p.Tourism.CrowdOutPct,
		})
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	return append(warnings, validator.ValidateAll()...)
}
