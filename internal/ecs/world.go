package ecs

import (
	"sort"

	"github.com/younwookim/locomotion/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds every live character keyed by id
type World struct {
	nextID EntityID

	Characters map[EntityID]entity.Mover
	Players    map[EntityID]*entity.Player
	Enemies    map[EntityID]*entity.Enemy

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Characters: make(map[EntityID]entity.Mover),
		Players:    make(map[EntityID]*entity.Player),
		Enemies:    make(map[EntityID]*entity.Enemy),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// AddPlayer registers p and makes it the world's player
func (w *World) AddPlayer(p *entity.Player) EntityID {
	id := w.NewEntity()
	w.Characters[id] = p
	w.Players[id] = p
	w.PlayerID = id
	return id
}

// AddEnemy registers e
func (w *World) AddEnemy(e *entity.Enemy) EntityID {
	id := w.NewEntity()
	w.Characters[id] = e
	w.Enemies[id] = e
	return id
}

// Character returns the shared character record for id
func (w *World) Character(id EntityID) (*entity.Character, bool) {
	m, ok := w.Characters[id]
	if !ok {
		return nil, false
	}
	return m.Char(), true
}

// Player returns the world's player, or nil if there is none
func (w *World) Player() *entity.Player {
	return w.Players[w.PlayerID]
}

// IDs returns all entity ids in ascending order
func (w *World) IDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Characters))
	for id := range w.Characters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CountEnemies returns the number of enemies still alive
func (w *World) CountEnemies() int {
	n := 0
	for _, e := range w.Enemies {
		if !e.IsDead() {
			n++
		}
	}
	return n
}
