// Package commands implements the rbxsync CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/internal/logging"
	"github.com/rbxsync-io/rbxsync/pkg/rbxclient"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// Exit codes by error kind. main picks these up from ExitCode.
const (
	exitGeneric         = 1
	exitConfig          = 2
	exitInvalidArgument = 3
	exitNetwork         = 4
	exitUpstream        = 5
	exitDecode          = 6
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case rbxcloud.IsConfig(err):
		return exitConfig
	case rbxcloud.IsInvalidArgument(err):
		return exitInvalidArgument
	case rbxcloud.IsNetwork(err):
		return exitNetwork
	case rbxcloud.IsUpstream(err):
		return exitUpstream
	case rbxcloud.IsDecode(err):
		return exitDecode
	default:
		return exitGeneric
	}
}

// CreateClient builds an Open Cloud client from the resolved configuration.
func CreateClient() (rbxcloud.Client, error) {
	apiKey := viper.GetString("api-key")
	if apiKey == "" {
		return nil, rbxcloud.NewConfigError(constants.ErrNoAPIKey.Error())
	}

	config := &rbxcloud.Config{
		APIKey:     apiKey,
		BaseURL:    viper.GetString("base-url"),
		UniverseID: viper.GetString("universe"),
		Debug:      viper.GetBool("verbose"),
		Logger:     commandLogger(),
	}

	return rbxclient.New(config)
}

// ResolveUniverseID returns the universe ID from the flag, config file, or
// environment.
func ResolveUniverseID() (string, error) {
	universeID := viper.GetString("universe")
	if universeID == "" {
		return "", rbxcloud.NewConfigError(constants.ErrNoUniverseID.Error())
	}

	return universeID, nil
}

// commandLogger returns the stderr logger. Debug level when --verbose.
func commandLogger() rbxcloud.Logger {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	return logging.New(os.Stderr, level)
}

// renderStructured writes v as JSON or YAML when the output format asks for
// either, reporting whether it handled the output. Table rendering stays in
// the individual commands.
func renderStructured(v interface{}) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}

		return true, nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}

		return true, encoder.Close()
	default:
		return false, nil
	}
}

// listOptionsFromFlags assembles ListOptions from the shared paging flags.
func listOptionsFromFlags(limit int, cursor, prefix string) *rbxcloud.ListOptions {
	opts := rbxcloud.NewListOptions()

	if limit > 0 {
		opts = opts.WithLimit(limit)
	}

	if cursor != "" {
		opts = opts.WithCursor(cursor)
	}

	if prefix != "" {
		opts = opts.WithPrefix(prefix)
	}

	return opts
}

func formatPrice(price *int64) string {
	if price == nil {
		return constants.NotAvailable
	}

	return strconv.FormatInt(*price, 10)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
