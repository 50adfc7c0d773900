package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/repository"
	"github.com/tempohq/tempo/backend/internal/seed"
	"github.com/tempohq/tempo/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var (
		op int
		n  int
	)
	flag.IntVar(&op, "op", 0, "operation: 1 = random users, 2 = random projects, 3 = demo dataset")
	flag.IntVar(&n, "n", 0, "number of records to insert (op 1 and 2)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.Password, "example.com")
			if err != nil {
				slog.Error("failed to generate random user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.Users.Create(user); err != nil {
				slog.Error("failed to insert user", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("users inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("number of projects must be positive")
			return
		}

		users, err := repo.Users.GetAll()
		if err != nil {
			slog.Error("failed to list users", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			project := utils.GenerateRandomProject()

			memberIDs := []string{}
			for _, user := range users {
				if len(memberIDs) >= 5 {
					break
				}
				memberIDs = append(memberIDs, user.ID)
			}

			if err := repo.Projects.Create(project, memberIDs); err != nil {
				slog.Error("failed to insert project", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("projects inserted", slog.Int("count", cnt))
	case 3:
		seed.SeedDemoData(repo, cfg.Seed.Password)
	default:
		slog.Error("unknown operation")
	}
}
