package counterrepo_test

import (
	"fmt"
	"testing"
	"time"

	"cafe/internal/adapters/out/postgres/counterrepo"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&counterrepo.CounterDTO{}))
	return db
}

func TestGormCounterRepository_Increment(t *testing.T) {
	ctx := t.Context()
	repo := counterrepo.NewGormCounterRepository(openSQLite(t))

	today := kernel.NewBusinessDate(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), time.UTC)
	tomorrow := kernel.NewBusinessDate(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), time.UTC)

	for want := 1; want <= 3; want++ {
		seq, err := repo.Increment(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	seq, err := repo.Increment(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "every day starts from 1")

	seq, err = repo.Increment(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 4, seq)
}

func TestGormCounterRepository_Increment_StoresCompactDate(t *testing.T) {
	db := openSQLite(t)
	repo := counterrepo.NewGormCounterRepository(db)

	date, err := kernel.ParseBusinessDate("20261231")
	require.NoError(t, err)
	_, err = repo.Increment(t.Context(), date)
	require.NoError(t, err)

	var row counterrepo.CounterDTO
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "20261231", row.Date)
	assert.Equal(t, 1, row.Seq)
}

func TestGormCounterRepository_Increment_ZeroDate(t *testing.T) {
	repo := counterrepo.NewGormCounterRepository(openSQLite(t))

	_, err := repo.Increment(t.Context(), kernel.BusinessDate{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
