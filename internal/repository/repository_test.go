package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unipair/match-service/internal/db"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedProfile(t *testing.T, gdb *gorm.DB, userID uint64, active bool, visibility string, country uint64, term string) {
	t.Helper()

	require.NoError(t, gdb.Create(&db.User{
		ID:           userID,
		Email:        fmt.Sprintf("u%d@test.com", userID),
		PasswordHash: "x",
		Active:       active,
	}).Error)

	profile := db.Profile{
		UserID:     userID,
		FirstName:  fmt.Sprintf("User%d", userID),
		Gender:     "female",
		Visibility: visibility,
	}
	if country != 0 {
		profile.DestinationCountryID = &country
	}
	if term != "" {
		profile.AcademicTerm = &term
	}
	require.NoError(t, gdb.Create(&profile).Error)
}
