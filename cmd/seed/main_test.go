package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talencee/careers/internal/database"
	"github.com/talencee/careers/recruitment/content/contentinfra"
	"github.com/talencee/careers/recruitment/job/jobinfra"
)

func TestSeed_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db))

	for i := 0; i < 2; i++ {
		n, err := seed(ctx, db, seedData)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	}

	jobs, err := jobinfra.NewPostgresJobRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 4)

	doc, err := contentinfra.NewPostgresContentRepository(db).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Apply Now", doc.CTA.ButtonText)
}

func TestSeed_RejectsBrokenData(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = seed(ctx, db, []byte(`{"jobs": [`))

	assert.ErrorContains(t, err, "parse seed data")
}
