package main

import (
	"fmt"
	"log"
	"os"

	_ "orcamentos/docs"
	"orcamentos/internal/adapter/http/routes"
	"orcamentos/internal/infrastructure/config"
	"orcamentos/internal/infrastructure/database"
	"orcamentos/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// @title           Orçamentos API
// @version         1.0
// @description     Budget/quote (orçamento) management backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// rootCmd runs the HTTP server when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Orçamentos API server and maintenance commands.",
	SilenceUsage: true,
	RunE:         serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server.",
	RunE:  serve,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the DynamoDB tables and indexes that are missing.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg.AWS)
		if err != nil {
			return err
		}
		return database.EnsureTables(cmd.Context(), ddb, cfg.Tables)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default service group, services and admin user.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg.AWS)
		if err != nil {
			return err
		}

		res, err := routes.NewContainer(ddb, cfg).Setup.Seed(cmd.Context(), usecase.AdminSeedInput{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "group created: %t\nservices created: %t\nadmin created: %t\n",
			res.GroupCreated, res.ServiceCreated, res.AdminCreated)
		return nil
	},
}

func serve(cmd *cobra.Command, _ []string) error {
	return routes.Run(cmd.Context(), config.Load())
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Failed to startup the application: %v", err)
		os.Exit(1)
	}
}
