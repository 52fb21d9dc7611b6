package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wsetiyawan/balancebook/internal/apperrors"
)

const (
	entryNumberPrefix = "JRN"
	entrySeqDigits    = 6
	entrySeqMax       = 999999
)

// dailyNumberPrefix builds the shared prefix of every entry number generated
// on the given day, e.g. "JRN20251015".
func dailyNumberPrefix(day time.Time) string {
	return entryNumberPrefix + day.Format("20060102")
}

// nextEntryNumber computes the next entry number for a day given the
// lexicographically greatest existing number sharing the day's prefix
// (empty when the day has none). The sequence starts at 1 and is zero-padded
// to six digits. A malformed suffix or an exhausted sequence is an error,
// never a silent wrap.
func nextEntryNumber(day time.Time, latest string) (string, error) {
	prefix := dailyNumberPrefix(day)
	if latest == "" {
		return fmt.Sprintf("%s%0*d", prefix, entrySeqDigits, 1), nil
	}

	if !strings.HasPrefix(latest, prefix) {
		return "", fmt.Errorf("%w: entry number %q does not match prefix %s", apperrors.ErrConflict, latest, prefix)
	}
	suffix := latest[len(prefix):]
	if len(suffix) != entrySeqDigits {
		return "", fmt.Errorf("%w: malformed entry number %q", apperrors.ErrConflict, latest)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("%w: malformed entry number %q", apperrors.ErrConflict, latest)
	}
	if seq >= entrySeqMax {
		return "", fmt.Errorf("%w: entry number sequence exhausted for prefix %s", apperrors.ErrConflict, prefix)
	}
	return fmt.Sprintf("%s%0*d", prefix, entrySeqDigits, seq+1), nil
}
