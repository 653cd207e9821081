package match

import "time"

type SwipeRequest struct {
	SwipedUserID uint64 `json:"swipedUserId"`
	Direction    string `json:"direction"`
}

// PartySummary is the compact public view returned inside a fresh match.
type PartySummary struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Photo    string `json:"photo,omitempty"`
}

// MatchView is a newly materialized (or rediscovered) match with both
// parties' summaries. First/second order is a storage artifact only.
type MatchView struct {
	ID        uint64       `json:"id"`
	MatchedAt time.Time    `json:"matchedAt"`
	UserA     PartySummary `json:"userA"`
	UserB     PartySummary `json:"userB"`
}

type SwipeResponse struct {
	Success bool       `json:"success"`
	Matched bool       `json:"matched"`
	Match   *MatchView `json:"match,omitempty"`
}

type MatchInstitution struct {
	Name string `json:"name"`
}

// MatchedProfile is the other party's profile as shown on the match list.
type MatchedProfile struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	Username    string           `json:"username"`
	Bio         string           `json:"bio,omitempty"`
	Photos      []string         `json:"photos"`
	Interests   []string         `json:"interests"`
	Institution MatchInstitution `json:"institution"`
}

type MatchEntry struct {
	ID        uint64         `json:"id"`
	MatchedAt time.Time      `json:"matchedAt"`
	User      MatchedProfile `json:"user"`
}

type MatchListResponse struct {
	Success bool         `json:"success"`
	Matches []MatchEntry `json:"matches"`
	Count   int          `json:"count"`
}
