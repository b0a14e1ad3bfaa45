package utils

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 14

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CoerceInt converts an arbitrary JSON value to an int, defaulting to 0 for
// anything non-numeric. The zero default is deliberate result-entry policy:
// malformed numeric strings are stored as 0, never rejected.
func CoerceInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(parsed)
		}
		return 0
	default:
		return 0
	}
}

// CoerceOvers normalizes an overs value to its "overs.balls" display string.
// Numbers are formatted as-is; anything unusable becomes "0".
func CoerceOvers(v interface{}) string {
	switch o := v.(type) {
	case string:
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			return trimmed
		}
		return "0"
	case float64:
		return strconv.FormatFloat(o, 'f', -1, 64)
	case int:
		return strconv.Itoa(o)
	default:
		return "0"
	}
}

// TeamShortCode derives a team's immutable code from its generated identifier
// plus one random letter. Uniqueness follows from the identifier, not the
// letter.
func TeamShortCode(teamID int) string {
	letter := rune('A' + rand.Intn(26))
	return strconv.Itoa(teamID) + string(letter)
}

// PlayerCode returns a 4-character code a verified player binds roster slots
// with.
func PlayerCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return id[:4]
}
