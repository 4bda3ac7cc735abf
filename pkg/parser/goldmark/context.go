package goldmark

import (
	"github.com/yuin/goldmark/parser"
)

//nolint:gochecknoglobals // goldmark context keys are allocated once.
var sourceKey = parser.NewContextKey()

// sourceString returns the document source as a string, converting it once
// per parse. The annotation productions work on strings.
func sourceString(pc parser.Context, source []byte) string {
	if s, ok := pc.Get(sourceKey).(string); ok && len(s) == len(source) {
		return s
	}
	s := string(source)
	pc.Set(sourceKey, s)
	return s
}
