package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		amount     = flag.Int("amount", 20, "Number of questions to fetch (max 50)")
		category   = flag.Int("category", 0, "Open Trivia DB category id (0 = any)")
		difficulty = flag.String("difficulty", "", "easy, medium or hard (empty = any)")
		baseURL    = flag.String("base-url", "", "Open Trivia DB base URL")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	pg, err := config.LoadPostgres()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	queries := sqlcgen.New(pool)
	svc := question.NewService(
		repository.NewQuestionRepository(queries),
		repository.NewCategoryRepository(queries),
		question.ServiceOptions{},
	)
	importer := question.NewImporter(svc, external.NewOpenTDBClient(*baseURL, nil), log.Logger)

	res, err := importer.Import(ctx, external.FetchOptions{
		Amount:     *amount,
		Category:   *category,
		Difficulty: *difficulty,
	})
	if err != nil {
		log.Fatal().Err(err).Int("created", res.Created).Msg("import failed")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("import complete")
}
