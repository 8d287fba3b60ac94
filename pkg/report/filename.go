package report

import (
	"strings"
	"time"
)

const filenameMaxPart = 40

// Filename builds the artifact name "Report_<title>_<property>_<date>.pdf".
// Title and property are sanitized to a filesystem-safe character set; empty
// parts are skipped.
func Filename(title, property string, date time.Time) string {
	parts := []string{"Report"}
	if p := sanitizePart(title); p != "" {
		parts = append(parts, p)
	}
	if p := sanitizePart(property); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, date.Format("2006-01-02"))
	return strings.Join(parts, "_") + ".pdf"
}

// sanitizePart folds a free-text label onto [A-Za-z0-9-], collapsing runs of
// anything else into a single dash and capping the length.
func sanitizePart(raw string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	part := strings.Trim(b.String(), "-")
	if len(part) > filenameMaxPart {
		part = strings.Trim(part[:filenameMaxPart], "-")
	}
	return part
}
