package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"

	_ "golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings   *SettingsConfig
	Entities   *EntitiesConfig
	Archetypes *ArchetypesConfig
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads settings.json. Omitted input settings keep their defaults.
func (l *Loader) LoadSettings() (*SettingsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "settings.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read settings.json: %w", err)
	}

	cfg := SettingsConfig{Input: DefaultInputConfig()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings.json: %w", err)
	}

	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadArchetypes loads archetypes.yaml. A missing file yields an empty
// config so the built-in rule tables apply.
func (l *Loader) LoadArchetypes() (*ArchetypesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "archetypes.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return &ArchetypesConfig{Archetypes: map[string]ArchetypeConfig{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archetypes.yaml: %w", err)
	}

	var cfg ArchetypesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse archetypes.yaml: %w", err)
	}
	if cfg.Archetypes == nil {
		cfg.Archetypes = map[string]ArchetypeConfig{}
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadSheet decodes a PNG or BMP sprite sheet. name is relative to the
// config root.
func (l *Loader) LoadSheet(name string) (image.Image, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", path.Join(l.basePath, name), err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet %s: %w", path.Join(l.basePath, name), err)
	}

	return img, nil
}

// LoadAll loads all base configurations (settings, entities, archetypes)
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	archetypes, err := l.LoadArchetypes()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings:   settings,
		Entities:   entities,
		Archetypes: archetypes,
	}, nil
}
