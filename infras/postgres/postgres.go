package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"rental/config"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresReadConn(*config),
		Write: CreatePostgresWriteConn(*config),
	}
}

// NewSingle uses one pool for both reads and writes.
func NewSingle(db *sqlx.DB) *Connection {
	return &Connection{
		Read:  db,
		Write: db,
	}
}

func (c *Connection) Close() {
	if c.Read != nil {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing read database connection")
		}
	}

	if c.Write != nil && c.Write != c.Read {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing write database connection")
		}
	}
}

// Ping checks that the write pool can reach the database.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		Descriptor(
			config.DB.Postgres.Write.Username,
			config.DB.Postgres.Write.Password,
			config.DB.Postgres.Write.Host,
			config.DB.Postgres.Write.Port,
			getDBName(config, config.DB.Postgres.Write.Name),
			config.DB.Postgres.Write.SSLMode,
		),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		Descriptor(
			config.DB.Postgres.Read.Username,
			config.DB.Postgres.Read.Password,
			config.DB.Postgres.Read.Host,
			config.DB.Postgres.Read.Port,
			getDBName(config, config.DB.Postgres.Read.Name),
			config.DB.Postgres.Read.SSLMode,
		),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

func Descriptor(username, password, host, port, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreatePostgresConnection connects with a constant backoff of waitTime seconds
// for at most maxRetry attempts. It returns nil when every attempt failed.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) *sqlx.DB {
	if maxRetry < 1 {
		maxRetry = 1
	}

	attempt := 0

	sqlDB, err := backoff.Retry(context.Background(), func() (*sqlx.DB, error) {
		attempt++

		db, err := sqlx.Connect("postgres", descriptor)
		if err != nil {
			log.
				Error().
				Err(err).
				Str("name", name).
				Int("attempt", attempt).
				Msg("Failed connecting to database, retrying")

			return nil, err
		}

		return db, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(time.Duration(waitTime)*time.Second)),
		backoff.WithMaxTries(uint(maxRetry)),
	)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Giving up connecting to database")

		return nil
	}

	log.
		Info().
		Str("name", name).
		Int("attempt", attempt).
		Msg("Connected to database")

	sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
	sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
	sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

	return sqlDB
}
