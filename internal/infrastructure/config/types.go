package config

// SettingsConfig is the root config for settings.json
type SettingsConfig struct {
	Display DisplayConfig `json:"display"`
	Input   InputConfig   `json:"input"`
	Audio   AudioConfig   `json:"audio"`
	Debug   DebugConfig   `json:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// InputConfig configures the input adapters
type InputConfig struct {
	Deadzone    float64 `json:"deadzone"`    // analog stick values within ±deadzone count as released
	JumpButton  int     `json:"jumpButton"`  // gamepad button index
	HoldTimeout float64 `json:"holdTimeout"` // seconds a terminal key counts as held
}

// AudioConfig configures transition cues
type AudioConfig struct {
	Enabled    bool                 `json:"enabled"`
	SampleRate int                  `json:"sampleRate"`
	Cues       map[string]CueConfig `json:"cues"` // keyed by state name
}

// CueConfig is a single sine tone
type CueConfig struct {
	Freq       float64 `json:"freq"`
	DurationMs int     `json:"durationMs"`
}

type DebugConfig struct {
	LogTransitions bool `json:"logTransitions"`
	ShowBoxes      bool `json:"showBoxes"`
}

// DefaultInputConfig returns the input settings used when settings.json omits them
func DefaultInputConfig() InputConfig {
	return InputConfig{
		Deadzone:    0.1,
		JumpButton:  2,
		HoldTimeout: 0.15,
	}
}
