package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nao1215/sentinel/internal/config"
	"github.com/nao1215/sentinel/internal/model"
)

// ErrUnknownScenario is returned when a scenario name is not in the catalogue.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is one simulated input.
type Scenario struct {
	// Name is the catalogue key, e.g. "messages".
	Name string `json:"name"`

	// Label names the monitor that produced the input, e.g. "SMS Monitor".
	Label string `json:"label"`

	// Source is the label passed to the session. It differs from Label
	// where the app reports its own channel, e.g. "Live Call Analysis".
	Source string `json:"source"`

	Context model.AppContext `json:"context"`
	Text    string           `json:"text"`

	// Recorded is the verdict replayed offline. Nil for config scenarios.
	Recorded *model.AnalysisResult `json:"recorded,omitempty"`
}

// HasRecording reports whether the scenario carries a recorded verdict.
func (s Scenario) HasRecording() bool {
	return s.Recorded != nil
}

func (s Scenario) clone() Scenario {
	if s.Recorded != nil {
		r := s.Recorded.Clone()
		s.Recorded = &r
	}
	return s
}

// Catalog is an ordered set of scenarios. It is not safe for concurrent
// modification; build it once at startup.
type Catalog struct {
	order []string
	byKey map[string]Scenario
}

// NewCatalog creates a catalogue holding the given scenarios in order.
// A later scenario with the same name replaces an earlier one.
func NewCatalog(scenarios ...Scenario) *Catalog {
	c := &Catalog{byKey: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		c.put(s)
	}
	return c
}

// Builtin returns a fresh catalogue of the five built-in scenarios.
func Builtin() *Catalog {
	return NewCatalog(builtins()...)
}

func (c *Catalog) put(s Scenario) {
	if _, ok := c.byKey[s.Name]; !ok {
		c.order = append(c.order, s.Name)
	}
	c.byKey[s.Name] = s.clone()
}

// Get returns the scenario with the given name.
func (c *Catalog) Get(name string) (Scenario, error) {
	s, ok := c.byKey[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScenario, name, c.Names())
	}
	return s.clone(), nil
}

// ForContext returns the first scenario of an app context.
func (c *Catalog) ForContext(ctx model.AppContext) (Scenario, bool) {
	for _, name := range c.order {
		if s := c.byKey[name]; s.Context == ctx {
			return s.clone(), true
		}
	}
	return Scenario{}, false
}

// Names returns the scenario names in catalogue order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// All returns every scenario in catalogue order.
func (c *Catalog) All() []Scenario {
	out := make([]Scenario, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byKey[name].clone())
	}
	return out
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Recordings maps each recorded scenario text to its verdict, in the form
// the replay classifier expects.
func (c *Catalog) Recordings() map[string]model.AnalysisResult {
	out := make(map[string]model.AnalysisResult, len(c.byKey))
	for _, s := range c.byKey {
		if s.Recorded != nil {
			out[s.Text] = s.Recorded.Clone()
		}
	}
	return out
}

// Apply merges scenarios from the config file. An entry named like a
// built-in replaces it and drops its recording, since the text changed.
// Entries are applied in name order so the catalogue order is stable.
func (c *Catalog) Apply(entries map[string]config.ScenarioConfig) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		entry := entries[name]
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}
		ctx, err := model.ParseAppContext(entry.Context)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}

		s := Scenario{
			Name:    name,
			Label:   entry.Source,
			Source:  entry.Source,
			Context: ctx,
			Text:    entry.Text,
		}
		if prev, ok := c.byKey[name]; ok {
			if s.Label == "" {
				s.Label, s.Source = prev.Label, prev.Source
			}
			if prev.Text == s.Text {
				s.Recorded = prev.Recorded
			}
		}
		if s.Source == "" {
			s.Label, s.Source = model.SourceManual, model.SourceManual
		}
		c.put(s)
	}
	return nil
}
