package pattern

import "strings"

const (
	fullMask     = "***"
	maxMaskWidth = 8
)

// Redact masks a matched secret value for inclusion in a finding.
// Tiers by length: six characters or fewer are fully masked, up to ten
// keep two characters each side, anything longer keeps four each side
// with the mask width capped. Redaction happens once, when the finding
// is created; the clear-text value never leaves the originating check.
func Redact(value string) string {
	n := len(value)
	switch {
	case n == 0:
		return ""
	case n <= 6:
		return fullMask
	case n <= 10:
		return value[:2] + fullMask + value[n-2:]
	default:
		width := n - 8
		if width > maxMaskWidth {
			width = maxMaskWidth
		}
		return value[:4] + strings.Repeat("*", width) + value[n-4:]
	}
}
