// Command setupdb applies the database schema. It connects with database/sql
// over lib/pq so it can run in environments where the API binary never will,
// such as provisioning scripts and CI jobs.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"server/internal/db"
)

func main() {
	_ = godotenv.Load()

	var (
		dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres connection string")
		timeout = flag.Duration("timeout", 30*time.Second, "connection timeout")
	)
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "setupdb: DATABASE_URL or -dsn is required")
		os.Exit(2)
	}

	if err := run(*dsn, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "setupdb:", err)
		os.Exit(1)
	}
	fmt.Println("schema applied")
}

func run(dsn string, timeout time.Duration) error {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	conn.SetConnMaxLifetime(timeout)
	if err := conn.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if _, err := conn.Exec(db.Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
