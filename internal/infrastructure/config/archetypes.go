package config

// ArchetypesConfig is the root config for archetypes.yaml
type ArchetypesConfig struct {
	Archetypes map[string]ArchetypeConfig `yaml:"archetypes"`
}

// ArchetypeConfig is a locomotion rule table. States and actions are
// referenced by name.
type ArchetypeConfig struct {
	States              []string           `yaml:"states"`
	Initial             string             `yaml:"initial"`
	ExclusiveDirections bool               `yaml:"exclusive_directions"`
	Uninterruptible     []string           `yaml:"uninterruptible"`
	Terminal            []string           `yaml:"terminal"`
	Landing             []string           `yaml:"landing"`
	Transitions         []TransitionConfig `yaml:"transitions"`
}

// TransitionConfig is one rule. An empty From matches any non-terminal state.
type TransitionConfig struct {
	On   string   `yaml:"on"`
	From []string `yaml:"from"`
	To   string   `yaml:"to"`
}
