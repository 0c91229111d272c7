package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player  CharacterConfig            `json:"player"`
	Enemies map[string]CharacterConfig `json:"enemies"`
}

// CharacterConfig describes one character kind
type CharacterConfig struct {
	ID        string        `json:"id"`
	Archetype string        `json:"archetype"` // key into archetypes.yaml, or a built-in name
	Size      SizeConfig    `json:"size"`
	Physics   PhysicsConfig `json:"physics"`
	Sprite    SpriteConfig  `json:"sprite"`
}

type SizeConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PhysicsConfig struct {
	WalkSpeed    float64 `json:"walkSpeed"`
	JumpSpeed    float64 `json:"jumpSpeed"`
	JumpDuration float64 `json:"jumpDuration"`
}

type SpriteConfig struct {
	Sheet       string                     `json:"sheet"`
	FrameWidth  int                        `json:"frameWidth"`
	FrameHeight int                        `json:"frameHeight"`
	Animations  map[string]AnimationConfig `json:"animations"` // keyed by state name
}

type AnimationConfig struct {
	Row    int `json:"row"`
	Frames int `json:"frames"`
	FPS    int `json:"fps"`
}
