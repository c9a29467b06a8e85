package main

import (
	"distance-matrix-service/internal/adapters/repositories"
	"distance-matrix-service/internal/config"
	"distance-matrix-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", config.DriverSqlite)

	dsn := config.Get("DB_PATH", "data/matrix.db")
	if driver == config.DriverPostgres {
		dsn = os.Getenv("DATABASE_URL")
		if strings.TrimSpace(dsn) == "" {
			log.Fatal("DATABASE_URL is required for the postgres driver")
		}
	}

	db, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Initializing database schema...")
	if driver == config.DriverPostgres {
		err = repositories.InitSQLSchema(db)
	} else {
		err = repositories.InitSqliteSchema(db)
	}
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
