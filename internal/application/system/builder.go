package system

import (
	"fmt"

	"github.com/younwookim/locomotion/internal/domain/animation"
	"github.com/younwookim/locomotion/internal/domain/entity"
	"github.com/younwookim/locomotion/internal/domain/locomotion"
	"github.com/younwookim/locomotion/internal/ecs"
	"github.com/younwookim/locomotion/internal/infrastructure/config"
)

// BuiltinRules returns a fresh copy of a built-in archetype
func BuiltinRules(name string) (*locomotion.Rules, bool) {
	switch name {
	case "player":
		return locomotion.PlayerRules(), true
	case "enemy":
		return locomotion.EnemyRules(), true
	}
	return nil, false
}

// ResolveRules returns the archetype named name. Tables from archetypes.yaml
// take precedence over the built-in ones.
func ResolveRules(name string, archetypes *config.ArchetypesConfig) (*locomotion.Rules, error) {
	if archetypes != nil {
		if cfg, ok := archetypes.Archetypes[name]; ok {
			return BuildRules(name, cfg)
		}
	}
	if r, ok := BuiltinRules(name); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: unknown archetype %q", locomotion.ErrInvalidRules, name)
}

// BuildRules converts an ArchetypeConfig into a validated rule table
func BuildRules(name string, cfg config.ArchetypeConfig) (*locomotion.Rules, error) {
	r := &locomotion.Rules{
		Name:                name,
		ExclusiveDirections: cfg.ExclusiveDirections,
	}

	var err error
	if r.States, err = parseStates(name, cfg.States); err != nil {
		return nil, err
	}
	if r.Uninterruptible, err = parseStates(name, cfg.Uninterruptible); err != nil {
		return nil, err
	}
	if r.Terminal, err = parseStates(name, cfg.Terminal); err != nil {
		return nil, err
	}
	if r.Initial, err = parseState(name, cfg.Initial); err != nil {
		return nil, err
	}
	for _, token := range cfg.Landing {
		a, ok := locomotion.ParseAction(token)
		if !ok {
			return nil, fmt.Errorf("%w: %s unknown landing action %q", locomotion.ErrInvalidRules, name, token)
		}
		r.Landing = append(r.Landing, a)
	}

	for i, t := range cfg.Transitions {
		a, ok := locomotion.ParseAction(t.On)
		if !ok {
			return nil, fmt.Errorf("%w: %s transition %d has unknown action %q", locomotion.ErrInvalidRules, name, i, t.On)
		}
		from, err := parseStates(name, t.From)
		if err != nil {
			return nil, err
		}
		to, err := parseState(name, t.To)
		if err != nil {
			return nil, err
		}
		r.Transitions = append(r.Transitions, locomotion.Rule{On: a, From: from, To: to})
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func parseState(archetype, name string) (locomotion.State, error) {
	s, ok := locomotion.ParseState(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s unknown state %q", locomotion.ErrInvalidRules, archetype, name)
	}
	return s, nil
}

func parseStates(archetype string, names []string) ([]locomotion.State, error) {
	var states []locomotion.State
	for _, name := range names {
		s, err := parseState(archetype, name)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, nil
}

// BuildAnimationTable converts per-state sprite animations into a table
func BuildAnimationTable(sprite config.SpriteConfig) (animation.Table, error) {
	table := make(animation.Table, len(sprite.Animations))
	for name, a := range sprite.Animations {
		s, ok := locomotion.ParseState(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown state %q", animation.ErrInvalidClip, name)
		}
		table[s] = animation.Clip{Frames: a.Frames, Row: a.Row, FPS: a.FPS}
	}
	return table, nil
}

// BuildSpec converts a character config into a character spec
func BuildSpec(cfg config.CharacterConfig, archetypes *config.ArchetypesConfig) (entity.Spec, error) {
	rules, err := ResolveRules(cfg.Archetype, archetypes)
	if err != nil {
		return entity.Spec{}, fmt.Errorf("character %s: %w", cfg.ID, err)
	}
	anims, err := BuildAnimationTable(cfg.Sprite)
	if err != nil {
		return entity.Spec{}, fmt.Errorf("character %s: %w", cfg.ID, err)
	}
	return entity.Spec{
		Name:  cfg.ID,
		Rules: rules,
		Physics: entity.Physics{
			WalkSpeed:    cfg.Physics.WalkSpeed,
			JumpSpeed:    cfg.Physics.JumpSpeed,
			JumpDuration: cfg.Physics.JumpDuration,
		},
		Animations: anims,
		Width:      cfg.Size.Width,
		Height:     cfg.Size.Height,
	}, nil
}

// SpawnCharacters creates the player at the stage's spawn point and every
// enemy listed by the stage
func SpawnCharacters(world *ecs.World, stage *config.StageConfig, game *config.GameConfig) error {
	spec, err := BuildSpec(game.Entities.Player, game.Archetypes)
	if err != nil {
		return err
	}
	player, err := entity.NewPlayer(spec, float64(stage.PlayerSpawn.X), float64(stage.PlayerSpawn.Y))
	if err != nil {
		return err
	}
	world.AddPlayer(player)

	for _, spawn := range stage.Enemies {
		cfg, ok := game.Entities.Enemies[spawn.Type]
		if !ok {
			return fmt.Errorf("stage %s: unknown enemy type %q", stage.ID, spawn.Type)
		}
		spec, err := BuildSpec(cfg, game.Archetypes)
		if err != nil {
			return err
		}
		enemy, err := entity.NewEnemy(spawn.Type, spec, float64(spawn.X), float64(spawn.Y))
		if err != nil {
			return err
		}
		world.AddEnemy(enemy)
	}
	return nil
}

// ApplyEntities pushes reloaded physics and animation tables onto live
// characters. Characters whose kind is missing from cfg are left alone.
// Nothing changes unless every table is valid.
func ApplyEntities(world *ecs.World, cfg *config.EntitiesConfig) error {
	type update struct {
		c       *entity.Character
		table   animation.Table
		physics entity.Physics
	}

	// Validate everything before touching any character
	var updates []update
	for _, id := range world.IDs() {
		var cc config.CharacterConfig
		switch {
		case world.Players[id] != nil:
			cc = cfg.Player
		case world.Enemies[id] != nil:
			var ok bool
			if cc, ok = cfg.Enemies[world.Enemies[id].Kind]; !ok {
				continue
			}
		default:
			continue
		}

		c, _ := world.Character(id)
		table, err := BuildAnimationTable(cc.Sprite)
		if err != nil {
			return fmt.Errorf("character %s: %w", cc.ID, err)
		}
		if err := table.Cover(c.Rules().Reachable()); err != nil {
			return fmt.Errorf("character %s: %w", cc.ID, err)
		}
		updates = append(updates, update{
			c:     c,
			table: table,
			physics: entity.Physics{
				WalkSpeed:    cc.Physics.WalkSpeed,
				JumpSpeed:    cc.Physics.JumpSpeed,
				JumpDuration: cc.Physics.JumpDuration,
			},
		})
	}

	for _, u := range updates {
		if err := u.c.SetAnimations(u.table); err != nil {
			return err
		}
		u.c.Physics = u.physics
	}
	return nil
}
