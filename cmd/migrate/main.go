package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/linguaflow/backend/internal/config"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  up             apply all pending migrations")
	fmt.Fprintln(os.Stderr, "  down           roll back the most recent migration")
	fmt.Fprintln(os.Stderr, "  down -all      roll back every migration")
	fmt.Fprintln(os.Stderr, "  version        print the current schema version")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	downAll := false
	if command == "down" {
		fs := flag.NewFlagSet("down", flag.ExitOnError)
		fs.BoolVar(&downAll, "all", false, "roll back every migration")
		fs.Parse(os.Args[2:])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v\n", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v\n", err)
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "content_schema_migrations",
	})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v\n", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v\n", err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Failed to apply migrations: %v\n", err)
		}
		fmt.Println("migrations applied")
	case "down":
		if downAll {
			if err := m.Down(); err != nil && err != migrate.ErrNoChange {
				log.Fatalf("Failed to roll back migrations: %v\n", err)
			}
			fmt.Println("all migrations rolled back")
		} else {
			if err := m.Steps(-1); err != nil {
				log.Fatalf("Failed to roll back migration: %v\n", err)
			}
			fmt.Println("migration rolled back")
		}
	case "version":
		version, dirty, err := m.Version()
		if err == migrate.ErrNilVersion {
			fmt.Println("no migrations applied")
			return
		}
		if err != nil {
			log.Fatalf("Failed to read schema version: %v\n", err)
		}
		fmt.Printf("version %d (dirty: %v)\n", version, dirty)
	default:
		usage()
	}
}
