package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/miplib"
	"github.com/google/uuid"
)

// Metric kinds stored in the metrics table.
const (
	kindSize        = "size"
	kindConstraints = "constraints"
)

// timestampFormat has fixed width so stored timestamps sort lexically.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Export describes one stored catalog snapshot.
type Export struct {
	ID        string
	CreatedAt time.Time
	Count     int
}

// InstanceService stores and reads catalog snapshots.
type InstanceService struct {
	db  *DB
	now func() time.Time
}

// NewInstanceService creates a new InstanceService.
func NewInstanceService(db *DB) *InstanceService {
	return &InstanceService{db: db, now: time.Now}
}

// SaveExport stores instances as a new snapshot in a single transaction.
func (s *InstanceService) SaveExport(ctx context.Context, instances []*miplib.Instance) (*Export, error) {
	export := &Export{
		ID:        uuid.New().String(),
		CreatedAt: s.now().UTC(),
		Count:     len(instances),
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO exports (id, created_at, instance_count) VALUES (?, ?, ?)
	`, export.ID, export.CreatedAt.Format(timestampFormat), export.Count); err != nil {
		return nil, err
	}

	for i, inst := range instances {
		if err := insertInstance(ctx, tx, export.ID, i, inst); err != nil {
			return nil, fmt.Errorf("instance %q: %w", inst.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return export, nil
}

func insertInstance(ctx context.Context, tx *sql.Tx, exportID string, position int, inst *miplib.Instance) error {
	tags := inst.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO instances (export_id, position, name, status, objective,
			is_infeasible, is_unbounded, is_optimal, is_benchmark, tags, url_download, url_info)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, exportID, position, inst.Name, inst.Status, nullFloat(inst.Objective),
		inst.IsInfeasible, inst.IsUnbounded, inst.IsOptimal, inst.IsBenchmark,
		string(tagsJSON), inst.URLDownload, inst.URLInfo); err != nil {
		return err
	}

	for kind, metrics := range map[string]map[string]miplib.Pair{kindSize: inst.Size, kindConstraints: inst.Constraints} {
		for key, p := range metrics {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO metrics (export_id, instance_name, kind, key, original, presolved)
				VALUES (?, ?, ?, ?, ?, ?)
			`, exportID, inst.Name, kind, key, p.Original, p.Presolved); err != nil {
				return err
			}
		}
	}
	return nil
}

// LatestExport returns the most recent snapshot.
// Returns ENOTFOUND if no snapshot has been stored.
func (s *InstanceService) LatestExport(ctx context.Context) (*Export, error) {
	var export Export
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, instance_count
		FROM exports
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&export.ID, &createdAt, &export.Count)
	if err == sql.ErrNoRows {
		return nil, miplib.Errorf(miplib.ENOTFOUND, "no export found")
	}
	if err != nil {
		return nil, err
	}

	export.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &export, nil
}

// FindInstances returns the instances of a snapshot in their stored order.
// Returns ENOTFOUND if the snapshot does not exist.
func (s *InstanceService) FindInstances(ctx context.Context, exportID string) ([]*miplib.Instance, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports WHERE id = ?`, exportID).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, miplib.Errorf(miplib.ENOTFOUND, "export %q not found", exportID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, status, objective, is_infeasible, is_unbounded, is_optimal, is_benchmark,
			tags, url_download, url_info
		FROM instances
		WHERE export_id = ?
		ORDER BY position
	`, exportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instances []*miplib.Instance
	byName := make(map[string]*miplib.Instance)
	for rows.Next() {
		inst := &miplib.Instance{
			Size:        make(map[string]miplib.Pair),
			Constraints: make(map[string]miplib.Pair),
		}
		var objective sql.NullFloat64
		var tags string
		if err := rows.Scan(&inst.Name, &inst.Status, &objective,
			&inst.IsInfeasible, &inst.IsUnbounded, &inst.IsOptimal, &inst.IsBenchmark,
			&tags, &inst.URLDownload, &inst.URLInfo); err != nil {
			return nil, err
		}
		inst.Objective = floatPtr(objective)
		if err := json.Unmarshal([]byte(tags), &inst.Tags); err != nil {
			return nil, fmt.Errorf("instance %q: invalid tags: %w", inst.Name, err)
		}
		instances = append(instances, inst)
		byName[inst.Name] = inst
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadMetrics(ctx, exportID, byName); err != nil {
		return nil, err
	}
	return instances, nil
}

func (s *InstanceService) loadMetrics(ctx context.Context, exportID string, byName map[string]*miplib.Instance) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_name, kind, key, original, presolved
		FROM metrics
		WHERE export_id = ?
	`, exportID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, kind, key string
		var p miplib.Pair
		if err := rows.Scan(&name, &kind, &key, &p.Original, &p.Presolved); err != nil {
			return err
		}
		inst, ok := byName[name]
		if !ok {
			continue
		}
		switch kind {
		case kindSize:
			inst.Size[key] = p
		case kindConstraints:
			inst.Constraints[key] = p
		}
	}
	return rows.Err()
}
