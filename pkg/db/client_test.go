package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClient(t *testing.T) *Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE ledger (id INTEGER PRIMARY KEY, note TEXT NOT NULL)`).Error)
	return NewWithConn(conn)
}

func countLedger(t *testing.T, client *Client) int64 {
	t.Helper()

	var count int64
	require.NoError(t, client.DB().Table("ledger").Count(&count).Error)
	return count
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	client := setupClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO ledger (note) VALUES ('kept')`).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countLedger(t, client))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := setupClient(t)
	boom := errors.New("write rejected")

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if insertErr := tx.Exec(`INSERT INTO ledger (note) VALUES ('discarded')`).Error; insertErr != nil {
			return insertErr
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, countLedger(t, client), "rows written before the failure must not survive")
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	client := setupClient(t)

	require.Panics(t, func() {
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			if insertErr := tx.Exec(`INSERT INTO ledger (note) VALUES ('discarded')`).Error; insertErr != nil {
				return insertErr
			}
			panic("worker died mid write")
		})
	})
	assert.Zero(t, countLedger(t, client))
}
