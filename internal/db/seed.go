package db

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedTestData resets the database and populates it with demo users,
// profiles, preferences, and a handful of likes.
//
// Behavior:
//  1. Clears existing rows in all matcher tables.
//  2. Creates 24 users spread over 3 destination countries and 2 academic
//     terms, half male half female, with hashed passwords.
//  3. Gives most users a preferences row with varied cleanliness, smoking,
//     and sleep settings; a third are mentors who have returned.
//  4. Inserts ~40 random like edges.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"notifications", "matches", "likes", "match_preferences", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	countries := []uint64{1, 2, 3}
	terms := []string{"2026-FALL", "2026-SPRING"}
	sleeps := []string{SleepNoPreference, SleepEarlyBird, SleepNightOwl}
	smokes := []string{SmokingNoPreference, SmokingNonSmokerOnly}
	activities := []string{"sports", "music", "travel"}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// --- Seed users + profiles + preferences ---
	userIDs := make([]uint64, 0, 24)
	for i := 1; i <= 24; i++ {
		user := User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Active:       true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		userIDs = append(userIDs, user.ID)

		gender := "male"
		if i%2 == 0 {
			gender = "female"
		}
		country := countries[i%len(countries)]
		term := terms[i%len(terms)]
		returned := i%3 == 0

		visibility := VisibilityPublic
		if i%8 == 0 {
			visibility = VisibilityPrivate
		}

		profile := Profile{
			UserID:                 user.ID,
			FirstName:              fmt.Sprintf("User%d", i),
			LastName:               "Demo",
			Gender:                 gender,
			DestinationCountryID:   &country,
			AcademicTerm:           &term,
			HasReturnedFromProgram: returned,
			Visibility:             visibility,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		// every 6th user has no preferences row at all
		if i%6 == 0 {
			continue
		}

		cleanliness := r.Intn(5) + 1
		prefs := MatchPreferences{
			UserID:             user.ID,
			Cleanliness:        &cleanliness,
			SmokingPreference:  smokes[r.Intn(len(smokes))],
			SleepSchedule:      sleeps[r.Intn(len(sleeps))],
			IsMentor:           returned,
			LookingForMentor:   !returned && r.Intn(100) < 40,
			LookingForRoommate: r.Intn(100) < 70,
			ActivityTypes:      activities[:r.Intn(len(activities)+1)],
		}
		if err := db.Create(&prefs).Error; err != nil {
			return fmt.Errorf("failed to seed preferences: %w", err)
		}
	}
	log.Println("Seeded 24 users with profiles.")

	// --- Seed likes ---
	categories := Categories
	created := 0
	for created < 40 {
		likerID := userIDs[r.Intn(len(userIDs))]
		likedID := userIDs[r.Intn(len(userIDs))]
		if likerID == likedID {
			continue
		}

		like := Like{
			LikerID:  likerID,
			LikedID:  likedID,
			Category: categories[r.Intn(len(categories))],
		}
		// duplicates hit the unique index; skip and try again
		if err := like.insertIgnoringDuplicates(db); err != nil {
			return err
		}
		created++
	}
	log.Println("Seeded like edges.")

	return nil
}

func (l *Like) insertIgnoringDuplicates(db *gorm.DB) error {
	err := db.Create(l).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return fmt.Errorf("failed to seed like: %w", err)
}
