package grab

import "regexp"

// Tolerant key-value patterns for the grabber's JSON-lines output.
// The value group is escape-aware: it accepts any run of non-quote,
// non-backslash characters or backslash-escaped pairs, so embedded
// \" sequences inside a body do not terminate the match early.
//
// Design decision: We match fields positionally instead of
// unmarshalling each line. zgrab2 nests the body several levels deep
// (data.http.response.body) and mixes host results with metadata
// lines; the first occurrence of each key is exactly what the report
// needs, and a line that fails strict JSON parsing can still carry a
// usable ip/body pair.
var (
	ipFieldRe   = regexp.MustCompile(`"ip"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	bodyFieldRe = regexp.MustCompile(`"body"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// stringField extracts the first occurrence of a string field matched
// by re, with escape sequences decoded. The second return value is
// false when the line contains no such field.
func stringField(line string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return Unescape(m[1]), true
}
