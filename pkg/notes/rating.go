package notes

import (
	"fmt"
	"strings"
)

// Rating is the closed set of opinions a player can attach to a note.
// The zero value is RatingNone.
type Rating int

// Rating values.
const (
	RatingNone     Rating = iota // no rating recorded ("NotFound")
	RatingNegative               // -1
	RatingNeutral                // 0
	RatingPositive               // 1
)

var ratingNames = map[Rating]string{
	RatingNone:     "NotFound",
	RatingNegative: "Negative",
	RatingNeutral:  "Neutral",
	RatingPositive: "Positive",
}

var ratingTokens = map[Rating]string{
	RatingNegative: "-1",
	RatingNeutral:  "0",
	RatingPositive: "1",
}

// ParseRating converts a stored rating token into a Rating. The numeric
// tokens "-1", "0" and "1" are what the addon writes; the value names are
// accepted case-insensitively. Any other token is an error.
func ParseRating(token string) (Rating, error) {
	t := strings.TrimSpace(token)
	for r, tok := range ratingTokens {
		if t == tok {
			return r, nil
		}
	}
	for r, name := range ratingNames {
		if strings.EqualFold(t, name) {
			return r, nil
		}
	}
	return RatingNone, fmt.Errorf("unknown rating %q", token)
}

// String returns the rating's name.
func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// IsSet reports whether r carries an opinion.
func (r Rating) IsSet() bool {
	return r != RatingNone
}

// Value returns the numeric value stored in the ratings table. ok is
// false for RatingNone, which is stored as an absent entry.
func (r Rating) Value() (value int, ok bool) {
	switch r {
	case RatingNegative:
		return -1, true
	case RatingNeutral:
		return 0, true
	case RatingPositive:
		return 1, true
	default:
		return 0, false
	}
}

// Token returns the stored token for the rating, or "NotFound".
func (r Rating) Token() string {
	if tok, ok := ratingTokens[r]; ok {
		return tok
	}
	return ratingNames[RatingNone]
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if _, ok := ratingNames[r]; !ok {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
