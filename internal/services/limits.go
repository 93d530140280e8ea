package services

const (
	DefaultListLimit = 30
	MaxListLimit     = 100
)

// normalizeLimit maps a missing or non-positive limit to the default and caps it.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
