// Package sync reconciles a declarative project file against a universe's
// remote monetization resources and tracks the outcome in a local state file.
package sync

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// ProjectFileName is the project file looked up in the project root.
const ProjectFileName = "rbxsync.yaml"

// DefaultAssetsDir is used when the project file does not set assets_dir.
const DefaultAssetsDir = "assets"

// Project is the declarative description of a universe's resources, loaded
// from rbxsync.yaml in the project root.
type Project struct {
	Universe          UniverseSettings       `yaml:"universe"`
	Creator           CreatorSettings        `yaml:"creator"            validate:"omitempty"`
	AssetsDir         string                 `yaml:"assets_dir"`
	GamePasses        []GamePassSpec         `yaml:"game_passes"        validate:"dive"`
	DeveloperProducts []DeveloperProductSpec `yaml:"developer_products" validate:"dive"`
	Badges            []BadgeSpec            `yaml:"badges"             validate:"dive"`
	Places            []PlaceSpec            `yaml:"places"             validate:"dive"`
}

// UniverseSettings is the optional universe metadata patch. All fields are
// optional; only set fields are sent.
type UniverseSettings struct {
	Name            *string  `yaml:"name"`
	Description     *string  `yaml:"description"`
	Genre           *string  `yaml:"genre"`
	PlayableDevices []string `yaml:"playable_devices"`
}

// CreatorSettings identifies who owns uploaded icon assets.
type CreatorSettings struct {
	Type string `yaml:"type" validate:"omitempty,oneof=user group"`
	ID   string `yaml:"id"`
}

// GamePassSpec declares one game pass.
type GamePassSpec struct {
	Name         string  `yaml:"name"           validate:"required"`
	Description  *string `yaml:"description"`
	PriceInRobux *int64  `yaml:"price_in_robux" validate:"omitempty,gte=0"`
	Icon         string  `yaml:"icon"`
}

// DeveloperProductSpec declares one developer product.
type DeveloperProductSpec struct {
	Name         string  `yaml:"name"           validate:"required"`
	Description  *string `yaml:"description"`
	PriceInRobux int64   `yaml:"price_in_robux" validate:"gte=0"`
	Icon         string  `yaml:"icon"`
}

// BadgeSpec declares one badge.
type BadgeSpec struct {
	Name          string  `yaml:"name"           validate:"required"`
	Description   *string `yaml:"description"`
	Icon          string  `yaml:"icon"`
	IsEnabled     *bool   `yaml:"is_enabled"`
	PaymentSource string  `yaml:"payment_source" validate:"omitempty,oneof=user group"`
}

// PlaceSpec declares one place file.
type PlaceSpec struct {
	PlaceID  int64  `yaml:"place_id"  validate:"required"`
	FilePath string `yaml:"file_path" validate:"required"`
	Publish  bool   `yaml:"publish"`
}

var validate = validator.New()

// LoadProject reads and validates the project file at path.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", constants.ErrProjectFileNotFound, path)
		}

		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	if project.AssetsDir == "" {
		project.AssetsDir = DefaultAssetsDir
	}

	if err := validate.Struct(&project); err != nil {
		return nil, fmt.Errorf("invalid project file: %w", err)
	}

	return &project, nil
}

// HasUniversePatch reports whether any universe metadata field is set.
func (p *Project) HasUniversePatch() bool {
	u := p.Universe

	return u.Name != nil || u.Description != nil || u.Genre != nil || len(u.PlayableDevices) > 0
}
