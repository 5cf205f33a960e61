package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rbxsync-io/rbxsync/internal/constants"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the rbxsync configuration stored in ~/.rbxsync/config.yml",
	}

	cmd.AddCommand(newConfigSetKeyCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [api-key]",
		Short: "Store the Open Cloud API key",
		Long:  "Store the Open Cloud API key in the config file. Prompts when no key is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var apiKey string

			if len(args) == 1 {
				apiKey = args[0]
			} else {
				fmt.Fprint(os.Stderr, "API key: ")

				input, err := term.ReadPassword(int(os.Stdin.Fd()))

				fmt.Fprintln(os.Stderr)

				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(input))
			}

			if apiKey == "" {
				return constants.ErrNoAPIKey
			}

			path, err := saveAPIKey(apiKey)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "API key saved to", path)

			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := constants.NotAvailable
			if viper.GetString("api-key") != "" {
				apiKey = constants.MaskedSecret
			}

			universeID := viper.GetString("universe")
			if universeID == "" {
				universeID = constants.NotAvailable
			}

			baseURL := viper.GetString("base-url")
			if baseURL == "" {
				baseURL = constants.NotAvailable
			}

			type configInfo struct {
				APIKey     string `json:"api_key"    yaml:"api_key"`
				UniverseID string `json:"universe"   yaml:"universe"`
				BaseURL    string `json:"base_url"   yaml:"base_url"`
				Output     string `json:"output"     yaml:"output"`
				ConfigFile string `json:"config_file" yaml:"config_file"`
			}

			info := configInfo{
				APIKey:     apiKey,
				UniverseID: universeID,
				BaseURL:    baseURL,
				Output:     viper.GetString("output"),
				ConfigFile: viper.ConfigFileUsed(),
			}

			handled, err := renderStructured(info)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Setting", "Value")
			_ = table.Append("API Key", info.APIKey)
			_ = table.Append("Universe", info.UniverseID)
			_ = table.Append("Base URL", info.BaseURL)
			_ = table.Append("Output", info.Output)
			_ = table.Append("Config File", info.ConfigFile)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// saveAPIKey writes the key into ~/.rbxsync/config.yml, creating the
// directory with restrictive permissions.
func saveAPIKey(apiKey string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	configDir := filepath.Join(home, ".rbxsync")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.yml")

	viper.Set("api-key", apiKey)

	if err := viper.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(path, constants.ConfigFilePerm); err != nil {
		return "", fmt.Errorf("failed to restrict config file permissions: %w", err)
	}

	return path, nil
}
