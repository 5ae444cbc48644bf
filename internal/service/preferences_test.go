package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampki/lifeofki/backend/internal/service"
	"github.com/kampki/lifeofki/backend/internal/types"
)

func TestPreferencesLazyDefaults(t *testing.T) {
	db := setupDB(t)
	svc := service.NewPreferencesService(db)
	userID := createUser(t, db)

	prefs, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultWeekStartDay, prefs.WeekStartDay)
	assert.Equal(t, service.DefaultTheme, prefs.Theme)

	// second read returns the same row, not another insert
	again, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, prefs.ID, again.ID)
}

func TestPreferencesPartialUpdate(t *testing.T) {
	db := setupDB(t)
	svc := service.NewPreferencesService(db)
	userID := createUser(t, db)
	ctx := context.Background()

	sunday := 0
	prefs, err := svc.Update(ctx, userID, types.PreferencesUpdate{WeekStartDay: &sunday})
	require.NoError(t, err)
	assert.Equal(t, 0, prefs.WeekStartDay)
	assert.Equal(t, service.DefaultTheme, prefs.Theme)

	dark := "dark"
	prefs, err = svc.Update(ctx, userID, types.PreferencesUpdate{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, 0, prefs.WeekStartDay)
}

func TestPreferencesUpdateValidation(t *testing.T) {
	db := setupDB(t)
	svc := service.NewPreferencesService(db)
	userID := createUser(t, db)
	ctx := context.Background()

	bad := 7
	_, err := svc.Update(ctx, userID, types.PreferencesUpdate{WeekStartDay: &bad})
	var verrs types.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "week_start_day")

	neon := "neon"
	_, err = svc.Update(ctx, userID, types.PreferencesUpdate{Theme: &neon})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "theme")
}
