package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roomease-server/client"
	"roomease-server/models"
)

var (
	flagBaseURL string
	flagConfig  string
	flagToken   string
)

var rootCmd = &cobra.Command{
	Use:   "roomwatch",
	Short: "Terminal companion for the roomease API",
	Long: `roomwatch is a small terminal client for roomease. It polls the API
the same way the web client does and prints chats, notifications and
booking activity as they change.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "http://localhost:4000", "API base URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "access token (defaults to ROOMEASE_TOKEN)")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(chatsCmd)
	rootCmd.AddCommand(notificationsCmd)
}

// buildSession resolves config file, flags and environment into a live
// session. Flags win over the config file.
func buildSession() (*client.Session, error) {
	cfg := client.Config{}
	if flagConfig != "" {
		loaded, err := client.LoadConfig(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	token := flagToken
	if token == "" {
		token = os.Getenv("ROOMEASE_TOKEN")
	}
	if token != "" {
		cfg.Token = token
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("no access token: pass --token or set ROOMEASE_TOKEN")
	}
	return client.NewSession(cfg, models.Identity{}), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
