package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedNames = []string{
	"Arjun", "Priya", "Rahul", "Anjali", "Vikram",
	"Sneha", "Rohan", "Pooja", "Aditya", "Divya",
	"Karan", "Meera", "Siddharth", "Neha", "Varun",
	"Riya", "Amit", "Kavya", "Nikhil", "Ishita",
}

var seedInterests = []string{
	"Photography", "Traveling", "Music", "Reading", "Gaming",
	"Fitness", "Cooking", "Art", "Dancing", "Movies",
	"Hiking", "Yoga", "Writing", "Sports", "Technology",
}

var seedBios = []string{
	"Just a coffee enthusiast looking for adventure",
	"Living life one playlist at a time",
	"Here for meaningful connections and good vibes",
	"Part-time photographer, full-time dreamer",
	"Bookworm searching for my next chapter",
	"Fitness junkie with a sweet tooth",
	"Tech geek with a creative side",
}

// SeedTestData resets the database and populates it with a demo campus.
//
// Behavior:
//  1. Clears matches, decisions, users and institutions.
//  2. Creates one approved institution plus one pending request.
//  3. Creates an admin account and 20 onboarded students (10 male,
//     10 female) with hashed passwords, interests and photos.
//  4. Generates decisions with ~70% positive swipes; every 3rd pair gets a
//     guaranteed reciprocal positive so matches exist out of the box.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"matches", "decisions", "users", "institutions"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"matches", "users", "institutions"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('matches', 'users', 'institutions')")
	}

	log.Println("Cleared existing data")

	campus := Institution{
		Name:        "BMS Institute of Technology and Management",
		Location:    "Bengaluru",
		EmailDomain: "bmsit.in",
		IsApproved:  true,
		RequestedBy: "admin@bmsit.in",
	}
	if err := db.Create(&campus).Error; err != nil {
		return fmt.Errorf("failed to seed institution: %w", err)
	}
	pending := Institution{
		Name:        "National Institute of Engineering",
		Location:    "Mysuru",
		EmailDomain: "nie.ac.in",
		RequestedBy: "student@nie.ac.in",
	}
	if err := db.Create(&pending).Error; err != nil {
		return fmt.Errorf("failed to seed pending institution: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := User{
		Name:          "Campus Admin",
		Username:      "admin",
		Email:         "admin@bmsit.in",
		PasswordHash:  string(hash),
		IsAdmin:       true,
		InstitutionID: campus.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	var userIDs []uint64
	for i, name := range seedNames {
		gender := "male"
		if i%2 == 1 {
			gender = "female"
		}

		interests := make(StringList, 0, 3)
		for j := 0; j < 3; j++ {
			interests = append(interests, seedInterests[r.Intn(len(seedInterests))])
		}

		user := User{
			Name:          name,
			Username:      fmt.Sprintf("bmsit%d", i+1),
			Email:         fmt.Sprintf("student%d@bmsit.in", i+1),
			PasswordHash:  string(hash),
			Bio:           seedBios[r.Intn(len(seedBios))],
			Gender:        gender,
			Interests:     interests,
			Photos:        StringList{fmt.Sprintf("https://picsum.photos/seed/%d/400", i+1)},
			IsOnboarded:   true,
			InstitutionID: campus.ID,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		userIDs = append(userIDs, user.ID)
	}
	log.Printf("Seeded %d users.", len(userIDs))

	counter := 0
	for _, actorID := range userIDs {
		for j := 0; j < 6; j++ {
			targetID := userIDs[r.Intn(len(userIDs))]
			if actorID == targetID {
				continue
			}

			direction := DirectionLeft
			if r.Intn(100) < 70 {
				direction = DirectionRight
			}

			// guarantee mutual likes every 3rd pair
			if counter%3 == 0 {
				direction = DirectionRight
				recip := Decision{ActorID: targetID, TargetID: actorID, Direction: DirectionRight}
				if err := db.Create(&recip).Error; err == nil {
					match := Match{UserAID: actorID, UserBID: targetID, PairKey: PairKey(actorID, targetID)}
					db.Create(&match)
				}
			}

			decision := Decision{ActorID: actorID, TargetID: targetID, Direction: direction}
			if err := db.Create(&decision).Error; err != nil {
				// duplicate pair from the random draw, skip it
				continue
			}
			counter++
		}
	}

	log.Printf("Seeded decisions for %d users.", len(userIDs))
	return nil
}
