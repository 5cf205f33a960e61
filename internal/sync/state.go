package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// StateDirName and StateFileName locate the state file under the project root.
const (
	StateDirName  = ".rbxsync"
	StateFileName = "state.yaml"
)

// State maps declared resource names to their remote identity. It is the
// memory between runs that keeps creates idempotent.
type State struct {
	GamePasses        map[string]ResourceState `yaml:"game_passes"`
	DeveloperProducts map[string]ResourceState `yaml:"developer_products"`
	Badges            map[string]ResourceState `yaml:"badges"`
}

// ResourceState records what a prior run learned about one resource.
type ResourceState struct {
	ID          int64  `yaml:"id"`
	IconHash    string `yaml:"icon_hash,omitempty"`
	IconAssetID int64  `yaml:"icon_asset_id,omitempty"`
}

// NewState returns an empty state with all maps allocated.
func NewState() *State {
	return &State{
		GamePasses:        make(map[string]ResourceState),
		DeveloperProducts: make(map[string]ResourceState),
		Badges:            make(map[string]ResourceState),
	}
}

// StatePath returns the state file path under projectRoot.
func StatePath(projectRoot string) string {
	return filepath.Join(projectRoot, StateDirName, StateFileName)
}

// LoadState reads the state file under projectRoot. A missing file is not an
// error; it yields an empty state.
func LoadState(projectRoot string) (*State, error) {
	data, err := os.ReadFile(StatePath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}

		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := NewState()
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.GamePasses == nil {
		state.GamePasses = make(map[string]ResourceState)
	}

	if state.DeveloperProducts == nil {
		state.DeveloperProducts = make(map[string]ResourceState)
	}

	if state.Badges == nil {
		state.Badges = make(map[string]ResourceState)
	}

	return state, nil
}

// Save writes the state file under projectRoot, creating the directory.
func (s *State) Save(projectRoot string) error {
	path := StatePath(projectRoot)

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}
