package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	upsertBatchSize = 200
	keyChunkSize    = 500
	// Composite keys expand to OR'd equality groups; keep the expression shallow.
	compositeChunkSize = 100
)

// UpsertResult counts the rows an Upsert inserted and updated.
type UpsertResult struct {
	Inserted int
	Updated  int
}

// Upsert writes rows in one transaction, inserting new natural keys and
// updating updateColumns of existing ones. keyColumns must carry a unique
// index; keys holds one value tuple per row in keyColumns order. Nothing is
// written when any batch fails.
func Upsert[T any](ctx context.Context, db *gorm.DB, rows []T, keyColumns []string, keys [][]any, updateColumns []string) (UpsertResult, error) {
	var result UpsertResult
	if len(rows) == 0 {
		return result, nil
	}
	if len(keys) != len(rows) {
		return result, fmt.Errorf("upsert: %d keys for %d rows", len(keys), len(rows))
	}

	conflict := make([]clause.Column, len(keyColumns))
	for i, col := range keyColumns {
		conflict[i] = clause.Column{Name: col}
	}
	chunk := keyChunkSize
	if len(keyColumns) > 1 {
		chunk = compositeChunkSize
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		for start := 0; start < len(keys); start += chunk {
			end := min(start+chunk, len(keys))
			var n int64
			if err := tx.Model(new(T)).Where(keyMatch(keyColumns, keys[start:end])).Count(&n).Error; err != nil {
				return fmt.Errorf("failed to count existing rows: %w", err)
			}
			existing += n
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   conflict,
			DoUpdates: clause.AssignmentColumns(updateColumns),
		}).CreateInBatches(&rows, upsertBatchSize).Error
		if err != nil {
			return fmt.Errorf("failed to upsert rows: %w", err)
		}

		result.Updated = int(existing)
		result.Inserted = len(rows) - int(existing)
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}
	return result, nil
}

// keyMatch builds "col IN (...)" for a single key column and
// "(a = ? AND b = ?) OR ..." for composite keys.
func keyMatch(columns []string, keys [][]any) clause.Expression {
	if len(columns) == 1 {
		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = k[0]
		}
		return clause.IN{Column: clause.Column{Name: columns[0]}, Values: values}
	}

	groups := make([]clause.Expression, len(keys))
	for i, k := range keys {
		eqs := make([]clause.Expression, len(columns))
		for j, col := range columns {
			eqs[j] = clause.Eq{Column: clause.Column{Name: col}, Value: k[j]}
		}
		groups[i] = clause.And(eqs...)
	}
	return clause.Or(groups...)
}
