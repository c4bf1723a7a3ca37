// cmd/seed/main.go loads the placeholder catalog into Postgres.
// Uso: DATABASE_URL=... go run ./cmd/seed
package main

import (
	"os"
	"time"

	"abbafoods/internal/config"
	"abbafoods/internal/demo"
	"abbafoods/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.ModoDemo() {
		log.Fatal().Msg("DATABASE_URL is required to seed")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	c := demo.Nuevo(time.Now())
	err = db.Transaction(func(tx *gorm.DB) error {
		tx = tx.Clauses(clause.OnConflict{DoNothing: true})
		if err := tx.Create(&c.Materias).Error; err != nil {
			return err
		}
		if err := tx.Create(&c.Presentaciones).Error; err != nil {
			return err
		}
		if err := tx.Omit("Ingredientes.Presentacion").Create(&c.Recetas).Error; err != nil {
			return err
		}
		if err := tx.Omit("Receta").Create(&c.Ordenes).Error; err != nil {
			return err
		}
		return tx.Create(&c.Pedidos).Error
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("materias", len(c.Materias)).
		Int("recetas", len(c.Recetas)).
		Int("pedidos", len(c.Pedidos)).
		Msg("catálogo de ejemplo cargado")
}
