package domain

import (
	"errors"
	"regexp"
	"strconv"
)

// Key is the canonical identity key shared by both catalogs (an ISBN read as an integer)
type Key uint64

var (
	// ErrNoKey means the raw identifier held no digits or was missing
	ErrNoKey = errors.New("no identity key")
	// ErrKeyOverflow means the digit run does not fit in a Key
	ErrKeyOverflow = errors.New("identity key out of range")
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractKey returns the integer value of the first contiguous run of digits in raw.
// Goodreads exports ISBNs as ="9781250811066" and StoryGraph as 9781250811066 or
// 9781250811066.0; all of them reduce to the same key.
func ExtractKey(raw *string) (Key, error) {
	if raw == nil {
		return 0, ErrNoKey
	}
	run := digitRun.FindString(*raw)
	if run == "" {
		return 0, ErrNoKey
	}
	n, err := strconv.ParseUint(run, 10, 63)
	if err != nil {
		return 0, ErrKeyOverflow
	}
	return Key(n), nil
}
