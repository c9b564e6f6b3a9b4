package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2/1/2006"

type noticeKind string

const (
	noticeSuccess noticeKind = "success"
	noticeError   noticeKind = "error"
	noticeInfo    noticeKind = "info"
)

// notice formats a toast-like message: "[kind] Title: text".
func notice(kind noticeKind, title, text string) string {
	return fmt.Sprintf("[%s] %s: %s", kind, title, text)
}

// rupiah formats an amount with dot thousands separators, e.g. "Rp 1.000.000".
func rupiah(amount int64) string {
	sign, mag := "", uint64(amount)
	if amount < 0 {
		// two's complement negation also covers math.MinInt64
		sign, mag = "-", -uint64(amount)
	}

	digits := strconv.FormatUint(mag, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return "Rp " + sign + b.String()
}

// parseAmount accepts plain digits and the "1.000.000" form.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), " ")
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// progressBar renders p in [0, 1] as a fixed width bar.
func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
