package model

import "sort"

// Genres lists the genre names accepted on venue and artist forms.
var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// States lists the two-letter state codes accepted on forms.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var (
	genreSet = toSet(Genres)
	stateSet = toSet(States)
)

// IsGenre reports whether g is one of Genres.
func IsGenre(g string) bool { return genreSet[g] }

// IsState reports whether s is one of States.
func IsState(s string) bool { return stateSet[s] }

// SortedStates returns a sorted copy of States.
func SortedStates() []string {
	out := append([]string(nil), States...)
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
