package pools

import (
	"database/sql"
	"fmt"

	"cosmossdk.io/math"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore persists the pool snapshot to a local SQLite file so that
// route-critical data survives process restarts. Amounts are stored as
// decimal strings to avoid integer truncation.
type SqliteStore struct {
	db *sql.DB
}

var _ Store = (*SqliteStore)(nil)

func NewSqliteStore(databaseFile string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", databaseFile)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS pools (
		id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		swap_fee TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS pool_assets (
		pool_id INTEGER NOT NULL,
		denom TEXT NOT NULL,
		amount TEXT NOT NULL,
		weight TEXT NOT NULL,
		PRIMARY KEY (pool_id, denom)
	);
	CREATE INDEX IF NOT EXISTS pool_assets_by_denom ON pool_assets (denom);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Store interface

func (s *SqliteStore) ReplaceAll(pools []Pool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pool_assets"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM pools"); err != nil {
		return err
	}

	insertPool, err := tx.Prepare("INSERT INTO pools (id, address, swap_fee) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertPool.Close()

	insertAsset, err := tx.Prepare("INSERT INTO pool_assets (pool_id, denom, amount, weight) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insertAsset.Close()

	for _, pool := range pools {
		if _, err := insertPool.Exec(pool.ID, pool.Address, pool.SwapFee.String()); err != nil {
			return err
		}
		for _, asset := range pool.Assets {
			if _, err := insertAsset.Exec(pool.ID, asset.Denom, asset.Amount.String(), asset.Weight.String()); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SqliteStore) Pool(id uint64) (*Pool, error) {
	row := s.db.QueryRow("SELECT id, address, swap_fee FROM pools WHERE id = ?", id)

	pool, err := scanPool(row)
	if err == sql.ErrNoRows {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadAssets(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

func (s *SqliteStore) PoolsContaining(denom string) ([]Pool, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.address, p.swap_fee
		FROM pools p
		JOIN pool_assets pa ON pa.pool_id = p.id
		WHERE pa.denom = ?
		ORDER BY p.id`, denom)
	if err != nil {
		return nil, err
	}

	return s.collectPools(rows)
}

func (s *SqliteStore) AllPools() ([]Pool, error) {
	rows, err := s.db.Query("SELECT id, address, swap_fee FROM pools ORDER BY id")
	if err != nil {
		return nil, err
	}

	return s.collectPools(rows)
}

// Private helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner) (*Pool, error) {
	var id uint64
	var address string
	var rawSwapFee string

	if err := row.Scan(&id, &address, &rawSwapFee); err != nil {
		return nil, err
	}

	swapFee, err := math.LegacyNewDecFromStr(rawSwapFee)
	if err != nil {
		return nil, fmt.Errorf("corrupt swap fee in pool cache: %w", err)
	}

	return &Pool{
		ID:      id,
		Address: address,
		SwapFee: swapFee,
	}, nil
}

func (s *SqliteStore) collectPools(rows *sql.Rows) ([]Pool, error) {
	defer rows.Close()

	result := []Pool{}
	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *pool)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := s.loadAssets(&result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *SqliteStore) loadAssets(pool *Pool) error {
	rows, err := s.db.Query("SELECT denom, amount, weight FROM pool_assets WHERE pool_id = ? ORDER BY denom", pool.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var denom string
		var rawAmount string
		var rawWeight string
		if err := rows.Scan(&denom, &rawAmount, &rawWeight); err != nil {
			return err
		}

		amount, ok := math.NewIntFromString(rawAmount)
		if !ok {
			return fmt.Errorf("corrupt amount in pool cache for pool %d, denom %s", pool.ID, denom)
		}
		weight, ok := math.NewIntFromString(rawWeight)
		if !ok {
			return fmt.Errorf("corrupt weight in pool cache for pool %d, denom %s", pool.ID, denom)
		}

		pool.Assets = append(pool.Assets, PoolAsset{
			Denom:  denom,
			Amount: amount,
			Weight: weight,
		})
	}
	return rows.Err()
}
