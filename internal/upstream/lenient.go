package upstream

import "regexp"

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// CleanJSON removes trailing commas before closing braces/brackets. The
// upstream service occasionally emits them, which strict JSON rejects.
// The second return value reports whether a repair was applied so callers
// can log the contract violation.
func CleanJSON(raw []byte) ([]byte, bool) {
	cleaned := trailingCommaRe.ReplaceAll(raw, []byte("$1"))
	if len(cleaned) == len(raw) {
		return raw, false
	}
	return cleaned, true
}
