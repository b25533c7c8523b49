package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekolabs/qc-triage/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrating an up-to-date database is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestIssueConfigRoundtrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveIssueConfig(ctx, IssueConfigRow{
		Name:       "Wobbly stand",
		DevFactory: model.DevFactoryFactory,
		Category:   model.CategoryCapture,
		Comment:    "new factory defect",
		IsCustom:   true,
	}))
	require.NoError(t, store.SaveIssueConfig(ctx, IssueConfigRow{
		Name:       "Bad copy",
		DevFactory: model.DevFactoryFactory,
	}))

	rows, err := store.ListIssueConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bad copy", rows[0].Name)
	assert.Equal(t, "Wobbly stand", rows[1].Name)
	assert.True(t, rows[1].IsCustom)
	assert.Equal(t, "new factory defect", rows[1].Comment)

	cfg, err := store.LoadIssueConfig(ctx)
	require.NoError(t, err)

	// The custom label joins the set and the override wins.
	_, ok := cfg.Canonical("wobbly stand")
	assert.True(t, ok)
	assert.Equal(t, model.DevFactoryFactory, cfg.Metadata("Bad copy").DevFactory)
	assert.Equal(t, model.CategoryCapture, cfg.Metadata("Wobbly stand").Category)

	// Untouched labels keep their built-in metadata.
	assert.Equal(t, model.DevFactoryDev, cfg.Metadata("BBOX issue").DevFactory)
}

func TestSaveIssueConfigUpsert(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	row := IssueConfigRow{Name: "Wobbly stand", IsCustom: true}
	require.NoError(t, store.SaveIssueConfig(ctx, row))

	row.Comment = "updated"
	require.NoError(t, store.SaveIssueConfig(ctx, row))

	rows, err := store.ListIssueConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "updated", rows[0].Comment)
}

func TestDeleteIssueConfig(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveIssueConfig(ctx, IssueConfigRow{Name: "Wobbly stand", IsCustom: true}))
	require.NoError(t, store.DeleteIssueConfig(ctx, "Wobbly stand"))

	rows, err := store.ListIssueConfigs(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testFlags(instanceIDs ...string) map[string][]model.FlaggedExperience {
	out := map[string][]model.FlaggedExperience{}
	for _, id := range instanceIDs {
		out["Damaged product"] = append(out["Damaged product"], model.FlaggedExperience{
			InstanceID: id,
			Issue:      "Damaged product",
			TicketName: "ticket " + id,
		})
	}
	return out
}

func TestFlaggedRoundtrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFlagged(ctx, "2026-08-30", testFlags("i1", "i2")))

	flagged, err := store.FlaggedByDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, flagged["Damaged product"], 2)
	assert.Equal(t, "i1", flagged["Damaged product"][0].InstanceID)
	assert.Equal(t, "ticket i1", flagged["Damaged product"][0].TicketName)

	// Re-saving the same date replaces, not appends.
	require.NoError(t, store.SaveFlagged(ctx, "2026-08-30", testFlags("i3")))
	flagged, err = store.FlaggedByDate(ctx, "2026-08-30")
	require.NoError(t, err)
	require.Len(t, flagged["Damaged product"], 1)
	assert.Equal(t, "i3", flagged["Damaged product"][0].InstanceID)
}

func TestFlaggedDates(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFlagged(ctx, "2026-08-20", testFlags("i1")))
	require.NoError(t, store.SaveFlagged(ctx, "2026-08-30", testFlags("i2")))

	dates, err := store.FlaggedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-30", "2026-08-20"}, dates)
}

func TestSaveFlaggedInvalidDate(t *testing.T) {
	store := newTestStorage(t)

	err := store.SaveFlagged(context.Background(), "today", testFlags("i1"))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSweepFlagged(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -60).Format("2006-01-02")
	recent := time.Now().Format("2006-01-02")
	require.NoError(t, store.SaveFlagged(ctx, old, testFlags("i1", "i2")))
	require.NoError(t, store.SaveFlagged(ctx, recent, testFlags("i3")))

	removed, err := store.SweepFlagged(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	dates, err := store.FlaggedDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{recent}, dates)
}
