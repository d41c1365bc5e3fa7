package testing

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/2beens/liftboard/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// GetDBPool connects to a real postgres, set via POSTGRES_HOST / POSTGRES_PORT / POSTGRES_DB,
// and makes sure the schema exists. The test is skipped when POSTGRES_HOST is not set.
func GetDBPool(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		t.Skip("POSTGRES_HOST not set, skipping test against real postgres")
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	dbName := os.Getenv("POSTGRES_DB")
	if dbName == "" {
		dbName = "liftboard_test"
	}
	t.Logf("using postgres: [%s:%s/%s]", host, port, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     port,
		DBName:     dbName,
		DBUser:     os.Getenv("POSTGRES_USER"),
		DBPassword: os.Getenv("POSTGRES_PASS"),
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	schema, err := os.ReadFile(SchemaPath())
	require.NoError(t, err)
	_, err = dbPool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return ctx, dbPool
}

// SchemaPath points at sql/schema.sql of this module.
func SchemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "sql", "schema.sql")
}
