package account

// Request/response shapes for the account endpoints. Field names follow the
// web client's JSON contract.

type SignupRequest struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	InstitutionID uint64 `json:"institutionId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileSetupRequest struct {
	Bio       string   `json:"bio"`
	Gender    string   `json:"gender"`
	Interests []string `json:"interests"`
	Photos    []string `json:"photos"`
}

type PreferencesRequest struct {
	PreferredAgeMin   int    `json:"preferredAgeMin"`
	PreferredAgeMax   int    `json:"preferredAgeMax"`
	PreferredDistance int    `json:"preferredDistance"`
	PreferredGender   string `json:"preferredGender"`
}

type UpdateProfileRequest struct {
	Name      string       `json:"name"`
	Username  string       `json:"username"`
	Bio       string       `json:"bio"`
	Gender    string       `json:"gender"`
	Interests []string     `json:"interests"`
	Photos    []string     `json:"photos"`
	Prefs     *Preferences `json:"preferences"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Preferences is the client-facing preferences block. GenderPreference uses
// the client vocabulary ("everyone"), mapped to the stored filter ("all") at
// the service boundary.
type Preferences struct {
	LookingFor       string   `json:"lookingFor"`
	AgeRange         AgeRange `json:"ageRange"`
	Distance         int      `json:"distance"`
	GenderPreference string   `json:"genderPreference"`
}

type InstitutionRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserView is the account's own profile representation. Preferences is only
// populated for onboarded accounts.
type UserView struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Bio         string         `json:"bio,omitempty"`
	Gender      string         `json:"gender,omitempty"`
	Interests   []string       `json:"interests"`
	Photos      []string       `json:"photos"`
	IsAdmin     bool           `json:"isAdmin"`
	IsOnboarded bool           `json:"isOnboarded"`
	Institution InstitutionRef `json:"institution"`
	Preferences *Preferences   `json:"preferences,omitempty"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type UserResponse struct {
	User UserView `json:"user"`
}
