package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Swipe directions accepted from clients. RIGHT and UP are both positive
// and equally eligible to form a match.
const (
	DirectionLeft  = "LEFT"
	DirectionRight = "RIGHT"
	DirectionUp    = "UP"
)

// PositiveDirections are the directions that can reciprocate into a match.
var PositiveDirections = []string{DirectionRight, DirectionUp}

// IsValidDirection reports whether d belongs to the closed direction set.
func IsValidDirection(d string) bool {
	return d == DirectionLeft || d == DirectionRight || d == DirectionUp
}

// IsPositiveDirection reports whether d counts toward a mutual match.
func IsPositiveDirection(d string) bool {
	return d == DirectionRight || d == DirectionUp
}

// StringList stores an ordered list of strings as a JSON column.
// Used for interest tags and photo references.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// Institution is a college gating signup by email domain.
// Created in pending state via a public request; an admin approves it or
// rejects it (hard delete).
type Institution struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"uniqueIndex;size:191;not null"`
	Location    string    `gorm:"size:191;not null"`
	EmailDomain string    `gorm:"uniqueIndex;size:128;not null"`
	IsApproved  bool      `gorm:"default:false;not null"`
	RequestedBy string    `gorm:"size:191"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// User table.
//
// Username is stored lowercased so the unique index doubles as the
// case-insensitive uniqueness check. Email domain must equal the affiliated
// institution's registered domain at signup time.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:128;not null"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	Bio       string     `gorm:"type:text"`
	Gender    string     `gorm:"size:16"`
	Interests StringList `gorm:"type:json"`
	Photos    StringList `gorm:"type:json"`

	PreferredAgeMin   int    `gorm:"default:18"`
	PreferredAgeMax   int    `gorm:"default:30"`
	PreferredDistance int    `gorm:"default:50"`
	PreferredGender   string `gorm:"size:16;default:all"`

	IsOnboarded bool `gorm:"default:false;not null"`
	IsAdmin     bool `gorm:"default:false;not null"`

	InstitutionID uint64      `gorm:"index;not null"`
	Institution   Institution `gorm:"foreignKey:InstitutionID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Decision is an actor's one-time swipe on a target.
//
// Composite PK: (ActorID, TargetID)
//   - The store-level uniqueness that serializes concurrent duplicate
//     submissions: the second writer hits the key, not a silent overwrite.
//
// Rows are immutable. There is no revision or withdrawal path.
type Decision struct {
	ActorID   uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_actor_target_direction,priority:1"`
	TargetID  uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_actor_target_direction,priority:2"`
	Direction string    `gorm:"size:8;not null;index:idx_actor_target_direction,priority:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Match links two users after mutual positive decisions.
//
// UserAID is the party whose decision completed the pair; the order carries
// no meaning beyond storage. PairKey is the canonical "<low>:<high>" form of
// the unordered pair and its unique index is what makes reconciliation safe
// under concurrent swipes from both sides.
type Match struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	UserAID uint64 `gorm:"index;not null"`
	UserBID uint64 `gorm:"index;not null"`
	PairKey string `gorm:"uniqueIndex;size:48;not null"`

	UserA User `gorm:"foreignKey:UserAID"`
	UserB User `gorm:"foreignKey:UserBID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PairKey returns the canonical storage key for the unordered user pair.
func PairKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}
