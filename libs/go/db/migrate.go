package db

import (
	"context"
	"embed"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate runs the embedded SQL migrations in file name order.
// Every statement is idempotent so the whole set is replayed on start.
func Migrate(ctx context.Context, conn DBTX) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return errors.Wrap(err, "read migrations dir")
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return errors.Wrapf(err, "read migration %s", name)
		}
		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			return errors.Wrapf(err, "execute migration %s", name)
		}
	}
	return nil
}
