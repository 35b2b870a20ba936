package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/cli"
	"github.com/avereen/plancast/internal/db"
	"github.com/avereen/plancast/internal/repository"
	"github.com/avereen/plancast/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.plancast/plancast.db
	dbPath := os.Getenv("PLANCAST_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".plancast", "plancast.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	subphaseRepo := repository.NewSQLiteSubphaseRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// The cascade engine writes ancestor ranges through the repositories.
	engine := cascade.NewEngine(repository.NewRangeStore(projectRepo, phaseRepo, subphaseRepo))
	treeSvc := service.NewTreeService(projectRepo, phaseRepo, subphaseRepo)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo),
		Phases:    service.NewPhaseService(phaseRepo, treeSvc, engine, uow),
		Subphases: service.NewSubphaseService(subphaseRepo, treeSvc, engine),
		Tree:      treeSvc,
	}

	// Detect interactive terminal for form and browse entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
