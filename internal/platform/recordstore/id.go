package recordstore

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns prefix + unix milliseconds + "-" + 9 random hex characters,
// e.g. "pay-1718000000000-3fa9c01be".
func NewID(prefix string) string {
	return newIDAt(prefix, time.Now())
}

func newIDAt(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
