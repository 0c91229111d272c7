package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/locomotion/internal/domain/animation"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

func createTestSprite(states ...string) config.SpriteConfig {
	anims := make(map[string]config.AnimationConfig, len(states))
	for i, s := range states {
		anims[s] = config.AnimationConfig{Row: i, Frames: 2, FPS: 8}
	}
	return config.SpriteConfig{FrameWidth: 16, FrameHeight: 24, Animations: anims}
}

func createTestGameConfig() *config.GameConfig {
	return &config.GameConfig{
		Settings: &config.SettingsConfig{Input: config.DefaultInputConfig()},
		Entities: &config.EntitiesConfig{
			Player: config.CharacterConfig{
				ID:        "player",
				Archetype: "player",
				Size:      config.SizeConfig{Width: 14, Height: 22},
				Physics:   config.PhysicsConfig{WalkSpeed: 50, JumpSpeed: 100, JumpDuration: 0.5},
				Sprite:    createTestSprite("walking", "falling", "jumping", "standing", "dead"),
			},
			Enemies: map[string]config.CharacterConfig{
				"blob": {
					ID:        "blob",
					Archetype: "enemy",
					Size:      config.SizeConfig{Width: 16, Height: 16},
					Physics:   config.PhysicsConfig{WalkSpeed: 20, JumpSpeed: 100},
					Sprite:    createTestSprite("walking", "falling", "standing", "dying"),
				},
			},
		},
		Archetypes: &config.ArchetypesConfig{Archetypes: map[string]config.ArchetypeConfig{}},
	}
}

func createTestArchetypeConfig() config.ArchetypeConfig {
	return config.ArchetypeConfig{
		States:          []string{"falling", "standing", "walking", "dying"},
		Initial:         "falling",
		Uninterruptible: []string{"falling"},
		Terminal:        []string{"dying"},
		Transitions: []config.TransitionConfig{
			{On: "falling", From: []string{"standing", "walking"}, To: "falling"},
			{On: "ground", From: []string{"falling"}, To: "standing"},
			{On: "dead", To: "dying"},
		},
	}
}

func TestResolveRules(t *testing.T) {
	t.Run("built-in archetypes", func(t *testing.T) {
		r, err := ResolveRules("player", nil)
		require.NoError(t, err)
		assert.Equal(t, locomotion.PlayerRules(), r)

		r, err = ResolveRules("enemy", &config.ArchetypesConfig{})
		require.NoError(t, err)
		assert.Equal(t, locomotion.EnemyRules(), r)
	})

	t.Run("file overrides built-in", func(t *testing.T) {
		cfgs := &config.ArchetypesConfig{Archetypes: map[string]config.ArchetypeConfig{
			"enemy": createTestArchetypeConfig(),
		}}

		r, err := ResolveRules("enemy", cfgs)
		require.NoError(t, err)
		assert.Empty(t, r.Landing)
	})

	t.Run("unknown archetype", func(t *testing.T) {
		_, err := ResolveRules("ghost", nil)
		assert.ErrorIs(t, err, locomotion.ErrInvalidRules)
	})
}

func TestBuildRules(t *testing.T) {
	t.Run("converts names", func(t *testing.T) {
		cfg := createTestArchetypeConfig()
		cfg.Landing = []string{"right"}
		cfg.ExclusiveDirections = true

		r, err := BuildRules("walker", cfg)
		require.NoError(t, err)

		assert.Equal(t, "walker", r.Name)
		assert.True(t, r.ExclusiveDirections)
		assert.Equal(t, locomotion.StateFalling, r.Initial)
		assert.Equal(t, []locomotion.Action{locomotion.ActionRight}, r.Landing)
		assert.Equal(t, []locomotion.State{locomotion.StateDying}, r.Terminal)
		require.Len(t, r.Transitions, 3)
		assert.Equal(t, locomotion.ActionFall, r.Transitions[0].On, "falling is an alias for fall")
		assert.Empty(t, r.Transitions[2].From)
	})

	tests := []struct {
		name   string
		mutate func(c *config.ArchetypeConfig)
	}{
		{"unknown state", func(c *config.ArchetypeConfig) { c.States = append(c.States, "flying") }},
		{"unknown initial", func(c *config.ArchetypeConfig) { c.Initial = "" }},
		{"unknown action", func(c *config.ArchetypeConfig) { c.Transitions[0].On = "dash" }},
		{"unknown landing action", func(c *config.ArchetypeConfig) { c.Landing = []string{"hop"} }},
		{"target outside state set", func(c *config.ArchetypeConfig) { c.Transitions[1].To = "jumping" }},
		{"direction action in table", func(c *config.ArchetypeConfig) { c.Transitions[0].On = "left" }},
		{"no dead rule", func(c *config.ArchetypeConfig) { c.Transitions = c.Transitions[:2] }},
		{"no terminal state", func(c *config.ArchetypeConfig) { c.Terminal = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestArchetypeConfig()
			tt.mutate(&cfg)

			_, err := BuildRules("broken", cfg)
			assert.ErrorIs(t, err, locomotion.ErrInvalidRules)
		})
	}
}

func TestBuildAnimationTable(t *testing.T) {
	t.Run("maps states", func(t *testing.T) {
		table, err := BuildAnimationTable(config.SpriteConfig{Animations: map[string]config.AnimationConfig{
			"walking": {Row: 0, Frames: 2, FPS: 8},
			"dead":    {Row: 1, Frames: 0, FPS: 1},
		}})
		require.NoError(t, err)

		assert.Equal(t, animation.Table{
			locomotion.StateWalking: {Frames: 2, Row: 0, FPS: 8},
			locomotion.StateDead:    {Frames: 0, Row: 1, FPS: 1},
		}, table)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, err := BuildAnimationTable(config.SpriteConfig{Animations: map[string]config.AnimationConfig{
			"swimming": {Frames: 1},
		}})
		assert.ErrorIs(t, err, animation.ErrInvalidClip)
	})
}

func TestSpawnCharacters(t *testing.T) {
	stage := &config.StageConfig{
		ID:          "test",
		PlayerSpawn: config.PositionConfig{X: 32, Y: 16},
		Enemies: []config.EnemySpawnConfig{
			{Type: "blob", X: 80, Y: 16},
			{Type: "blob", X: 120, Y: 16},
		},
	}

	t.Run("spawns player and enemies", func(t *testing.T) {
		world := ecs.NewWorld()

		err := SpawnCharacters(world, stage, createTestGameConfig())
		require.NoError(t, err)

		p := world.Player()
		require.NotNil(t, p)
		assert.Equal(t, 32.0, p.X)
		assert.Equal(t, 16.0, p.Y)
		assert.Equal(t, 14.0, p.W)
		assert.Equal(t, 0.5, p.Physics.JumpDuration)
		assert.Equal(t, locomotion.StateFalling, p.State())

		assert.Len(t, world.Enemies, 2)
		assert.Equal(t, []ecs.EntityID{1, 2, 3}, world.IDs())
		assert.Equal(t, 2, world.CountEnemies())
	})

	t.Run("unknown enemy type", func(t *testing.T) {
		bad := *stage
		bad.Enemies = []config.EnemySpawnConfig{{Type: "dragon"}}

		err := SpawnCharacters(ecs.NewWorld(), &bad, createTestGameConfig())
		assert.Error(t, err)
	})

	t.Run("missing clip for reachable state", func(t *testing.T) {
		game := createTestGameConfig()
		delete(game.Entities.Player.Sprite.Animations, "jumping")

		err := SpawnCharacters(ecs.NewWorld(), stage, game)
		assert.ErrorIs(t, err, animation.ErrMissingClip)
	})
}

func TestApplyEntities(t *testing.T) {
	world := ecs.NewWorld()
	stage := &config.StageConfig{Enemies: []config.EnemySpawnConfig{{Type: "blob"}}}
	game := createTestGameConfig()
	require.NoError(t, SpawnCharacters(world, stage, game))

	game.Entities.Player.Physics.WalkSpeed = 80
	game.Entities.Player.Sprite.Animations["falling"] = config.AnimationConfig{Row: 9, Frames: 3, FPS: 4}
	delete(game.Entities.Enemies, "blob")

	require.NoError(t, ApplyEntities(world, game.Entities))

	p := world.Player()
	assert.Equal(t, 80.0, p.Physics.WalkSpeed)
	assert.Equal(t, 9, p.Playback().Clip().Row)

	t.Run("invalid table keeps previous", func(t *testing.T) {
		delete(game.Entities.Player.Sprite.Animations, "dead")

		err := ApplyEntities(world, game.Entities)
		assert.ErrorIs(t, err, animation.ErrMissingClip)
		assert.Equal(t, 9, p.Playback().Clip().Row)
	})
}

func TestApplyEntities_InvalidEnemyKeepsPlayer(t *testing.T) {
	world := ecs.NewWorld()
	stage := &config.StageConfig{Enemies: []config.EnemySpawnConfig{{Type: "blob"}}}
	game := createTestGameConfig()
	require.NoError(t, SpawnCharacters(world, stage, game))

	game.Entities.Player.Physics.JumpSpeed = 999
	game.Entities.Player.Sprite.Animations["falling"] = config.AnimationConfig{Row: 9, Frames: 3, FPS: 4}
	delete(game.Entities.Enemies["blob"].Sprite.Animations, "dying")

	err := ApplyEntities(world, game.Entities)
	assert.ErrorIs(t, err, animation.ErrMissingClip)

	p := world.Player()
	assert.Equal(t, 100.0, p.Physics.JumpSpeed)
	assert.Equal(t, 1, p.Playback().Clip().Row)
}
