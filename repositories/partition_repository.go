package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/benchlooms/exchange-backend/repositories/dbmodels"

	"github.com/cockroachdb/errors"
)

// Tables range-partitioned by created_at, one partition per month.
var partitionedTables = []string{
	dbmodels.TABLE_DOMAIN_EVENTS,
	dbmodels.TABLE_AUDIT_LOGS,
}

type PartitionRepository struct{}

// EnsureMonthlyPartitions creates the partitions covering [from, to) for
// every partitioned table. CREATE TABLE IF NOT EXISTS makes the maintenance
// job idempotent, so re-running it is always safe.
func (repo *PartitionRepository) EnsureMonthlyPartitions(
	ctx context.Context,
	exec Executor,
	from, to time.Time,
) error {
	for month := startOfMonth(from); month.Before(to); month = month.AddDate(0, 1, 0) {
		for _, table := range partitionedTables {
			if err := repo.createMonthlyPartition(ctx, exec, table, month); err != nil {
				return err
			}
		}
	}
	return nil
}

func (repo *PartitionRepository) createMonthlyPartition(
	ctx context.Context,
	exec Executor,
	table string,
	month time.Time,
) error {
	next := month.AddDate(0, 1, 0)
	sql := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s PARTITION OF %s FOR VALUES FROM ('%s') TO ('%s')`,
		partitionName(table, month),
		table,
		month.Format("2006-01-02"),
		next.Format("2006-01-02"),
	)

	_, err := exec.Exec(ctx, sql)
	return errors.Wrap(err, fmt.Sprintf("can't create partition %s", partitionName(table, month)))
}

// DropEventPartitionsBefore detaches and drops domain event partitions whose
// upper bound falls before the cutoff. Audit log partitions are exempt from
// retention and never dropped here.
func (repo *PartitionRepository) DropEventPartitionsBefore(
	ctx context.Context,
	exec Executor,
	cutoff time.Time,
) ([]string, error) {
	var dropped []string
	for month := startOfMonth(cutoff).AddDate(-10, 0, 0); month.AddDate(0, 1, 0).Before(cutoff) ||
		month.AddDate(0, 1, 0).Equal(cutoff); month = month.AddDate(0, 1, 0) {

		name := partitionName(dbmodels.TABLE_DOMAIN_EVENTS, month)
		exists, err := repo.partitionExists(ctx, exec, name)
		if err != nil {
			return dropped, err
		}
		if !exists {
			continue
		}

		sql := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, name)
		if _, err := exec.Exec(ctx, sql); err != nil {
			return dropped, errors.Wrap(err, fmt.Sprintf("can't drop partition %s", name))
		}
		dropped = append(dropped, name)
	}
	return dropped, nil
}

func (repo *PartitionRepository) partitionExists(
	ctx context.Context,
	exec Executor,
	name string,
) (bool, error) {
	var exists bool
	err := exec.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_class WHERE relname = $1)`, name,
	).Scan(&exists)
	return exists, err
}

func partitionName(table string, month time.Time) string {
	return fmt.Sprintf("%s_y%dm%02d", table, month.Year(), int(month.Month()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
