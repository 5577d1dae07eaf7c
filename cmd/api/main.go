package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// @title PetPlus API
// @version 1.0
// @description Adopción de mascotas, vacunas, servicios y blog.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var rootCmd = &cobra.Command{
	Use:   "petplus-api",
	Short: "Backend HTTP de PetPlus",
	Long: `Backend HTTP de PetPlus.

Sin subcomando levanta el servidor (igual que "serve").
  serve   - levanta la API
  migrate - aplica las migraciones de Postgres y termina`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	// .env es opcional; en producción las variables vienen del entorno.
	_ = godotenv.Load()

	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
