package quote

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewNumber returns a human friendly quote number such as Q-20240508-1A2B3C.
func NewNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "Q-" + now.Format("20060102") + "-" + suffix
}
