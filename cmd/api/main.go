package main

import (
	"fmt"
	"os"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var envFile string

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "tutor-api",
	Short: "Persona-driven tutoring chat backend",
	Long: `tutor-api serves the tutoring chat API: accounts, profiles,
persona-seeded chat sessions and a Gemini proxy.

Settings come from flags, the environment and a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(personaCmd)
}

// @title                       Tutor Chat API
// @version                     1.0
// @description                 Persona-driven tutoring chat backend backed by Gemini.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
