package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lab1702/wingman/game"
	"github.com/lab1702/wingman/wingman"
)

// ErrUnknownProfile is returned when a profile name is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// TraitsConfig overrides individual personality traits. Unset fields keep
// the defaults.
type TraitsConfig struct {
	Aggressiveness *float64 `json:"aggressiveness,omitempty" yaml:"aggressiveness,omitempty"`
	Accuracy       *float64 `json:"accuracy,omitempty" yaml:"accuracy,omitempty"`
	Evasiveness    *float64 `json:"evasiveness,omitempty" yaml:"evasiveness,omitempty"`
}

// GeometryConfig overrides engagement distances. Unset fields keep the
// defaults.
type GeometryConfig struct {
	FormationOffset   *[3]float64 `json:"formationOffset,omitempty" yaml:"formationOffset,omitempty"`
	MaxTargetingRange *float64    `json:"maxTargetingRange,omitempty" yaml:"maxTargetingRange,omitempty"`
	MinAttackDistance *float64    `json:"minAttackDistance,omitempty" yaml:"minAttackDistance,omitempty"`
	MaxAttackDistance *float64    `json:"maxAttackDistance,omitempty" yaml:"maxAttackDistance,omitempty"`
	AvoidanceDistance *float64    `json:"avoidanceDistance,omitempty" yaml:"avoidanceDistance,omitempty"`
}

// Profile describes one kind of AI pilot.
type Profile struct {
	Name     string         `json:"name" yaml:"-"`
	Traits   TraitsConfig   `json:"traits" yaml:"traits"`
	Geometry GeometryConfig `json:"geometry" yaml:"geometry"`
	// Seed of the pilot's random generator. Zero derives one per agent.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// ProfileSet is the decoded profiles document.
type ProfileSet struct {
	// Wingman and Hostile name the profiles used for each side of the
	// reference scenario.
	Wingman  string              `json:"wingman" yaml:"wingman"`
	Hostile  string              `json:"hostile" yaml:"hostile"`
	Profiles map[string]*Profile `json:"profiles" yaml:"profiles"`
}

// LoadProfiles decodes a YAML profiles document.
func LoadProfiles(r io.Reader) (*ProfileSet, error) {
	var ps ProfileSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ps); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if ps.Profiles == nil {
		ps.Profiles = make(map[string]*Profile)
	}
	for name, p := range ps.Profiles {
		if p == nil {
			p = &Profile{}
			ps.Profiles[name] = p
		}
		p.Name = name
	}
	for _, ref := range []string{ps.Wingman, ps.Hostile} {
		if ref == "" {
			continue
		}
		if _, ok := ps.Profiles[ref]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, ref)
		}
	}
	return &ps, nil
}

// LoadProfilesFile opens path and decodes it. An empty path yields an empty
// set.
func LoadProfilesFile(path string) (*ProfileSet, error) {
	if path == "" {
		return LoadProfiles(strings.NewReader(""))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()
	return LoadProfiles(f)
}

// Get returns the named profile. The empty name returns the default profile.
func (ps *ProfileSet) Get(name string) (*Profile, error) {
	if name == "" {
		return &Profile{Name: "default"}, nil
	}
	if ps != nil {
		if p, ok := ps.Profiles[name]; ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// Names lists the defined profiles in sorted order.
func (ps *ProfileSet) Names() []string {
	if ps == nil {
		return nil
	}
	names := make([]string, 0, len(ps.Profiles))
	for name := range ps.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AgentTraits merges the overrides onto the default traits, clamped to [0,1].
func (p *Profile) AgentTraits() wingman.Traits {
	t := wingman.DefaultTraits()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = game.Clamp(*v, 0, 1)
		}
	}
	set(&t.Aggressiveness, p.Traits.Aggressiveness)
	set(&t.Accuracy, p.Traits.Accuracy)
	set(&t.Evasiveness, p.Traits.Evasiveness)
	return t
}

// AgentGeometry merges the overrides onto the default geometry and sanitizes it.
func (p *Profile) AgentGeometry() wingman.Geometry {
	g := wingman.DefaultGeometry()
	if p.Geometry.FormationOffset != nil {
		g.FormationOffset = game.Vec3(*p.Geometry.FormationOffset)
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&g.MaxTargetingRange, p.Geometry.MaxTargetingRange)
	set(&g.MinAttackDistance, p.Geometry.MinAttackDistance)
	set(&g.MaxAttackDistance, p.Geometry.MaxAttackDistance)
	set(&g.AvoidanceDistance, p.Geometry.AvoidanceDistance)
	return g.Sanitized()
}

// Options turns the profile into agent options.
func (p *Profile) Options() []wingman.Option {
	return []wingman.Option{
		wingman.WithTraits(p.AgentTraits()),
		wingman.WithGeometry(p.AgentGeometry()),
		wingman.WithSeed(p.Seed),
	}
}
