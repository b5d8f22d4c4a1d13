//go:build integration

// Package pgtest starts a throwaway Postgres container with the schema migrated.
package pgtest

import (
	"context"
	"fmt"
	"rental/helper"
	"rental/infras/postgres"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image    = "postgres:16-alpine"
	user     = "rental"
	password = "rental"
	dbName   = "rental"
	port     = "5432/tcp"

	startupTimeout = 90 * time.Second
)

// Start runs a Postgres container for t and migrates it with the files under
// sourceURL. The container is terminated when t finishes.
func Start(t *testing.T, sourceURL string) *postgres.Connection {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{port},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       dbName,
		},
		Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
		WaitingFor: wait.ForSQL(port, "postgres", func(host string, p nat.Port) string {
			return postgres.Descriptor(user, password, host, p.Port(), dbName, "disable")
		}).WithStartupTimeout(startupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()

		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)

	dsn := postgres.Descriptor(user, password, host, mapped.Port(), dbName, "disable")

	require.NoError(t, helper.RunWithDSN(sourceURL, dsn, helper.ActionUp), "failed to migrate")

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, fmt.Sprintf("failed to connect to %s:%s", host, mapped.Port()))

	conn := postgres.NewSingle(db)
	t.Cleanup(conn.Close)

	return conn
}
