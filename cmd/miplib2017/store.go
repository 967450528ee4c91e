package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/miplib"
	"github.com/fwojciec/miplib/fs"
	"github.com/fwojciec/miplib/sqlite"
)

var _ SnapshotStore = (*sqliteStore)(nil)

// sqliteStore opens the database only when a snapshot is saved so that a
// failed run leaves no database file behind.
type sqliteStore struct {
	path string
}

func (s *sqliteStore) Save(ctx context.Context, instances []*miplib.Instance) (string, error) {
	if err := fs.MkdirAll(filepath.Dir(s.path)); err != nil {
		return "", err
	}

	db := sqlite.NewDB(s.path)
	if err := db.Open(); err != nil {
		return "", fmt.Errorf("failed to open database at %q: %w", s.path, err)
	}
	defer db.Close()

	export, err := sqlite.NewInstanceService(db).SaveExport(ctx, instances)
	if err != nil {
		return "", err
	}
	return export.ID, nil
}
