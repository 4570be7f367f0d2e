package edit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// TextOp is one closed variant of the text transformations. Every operand is
// validated at construction so a malformed edit fails before any remote call.
type TextOp interface {
	Apply(current string) string
	textOp()
}

type PrependText struct{ Text string }

func (o PrependText) textOp() {}

func (o PrependText) Apply(current string) string { return o.Text + current }

type AppendText struct{ Text string }

func (o AppendText) textOp() {}

func (o AppendText) Apply(current string) string { return current + o.Text }

// RemoveText deletes every case-insensitive literal occurrence of Text.
type RemoveText struct {
	pattern *regexp.Regexp
}

func NewRemoveText(text string) (RemoveText, error) {
	if text == "" {
		return RemoveText{}, fmt.Errorf("text to remove is required")
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(text))
	if err != nil {
		return RemoveText{}, fmt.Errorf("text to remove: %w", err)
	}
	return RemoveText{pattern: re}, nil
}

func (o RemoveText) textOp() {}

func (o RemoveText) Apply(current string) string {
	return o.pattern.ReplaceAllLiteralString(current, "")
}

// ReplaceText substitutes every case-insensitive literal occurrence of Find
// with With.
type ReplaceText struct {
	pattern *regexp.Regexp
	with    string
}

func NewReplaceText(find, with string) (ReplaceText, error) {
	if find == "" {
		return ReplaceText{}, fmt.Errorf("text to replace is required")
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(find))
	if err != nil {
		return ReplaceText{}, fmt.Errorf("text to replace: %w", err)
	}
	return ReplaceText{pattern: re, with: with}, nil
}

func (o ReplaceText) textOp() {}

func (o ReplaceText) Apply(current string) string {
	return o.pattern.ReplaceAllLiteralString(current, o.with)
}

type CapitalizationMode string

const (
	CapitalizeTitle       CapitalizationMode = "titleCase"
	CapitalizeUpper       CapitalizationMode = "uppercase"
	CapitalizeLower       CapitalizationMode = "lowercase"
	CapitalizeFirstLetter CapitalizationMode = "firstLetter"
)

type Capitalize struct{ Mode CapitalizationMode }

func NewCapitalize(mode string) (Capitalize, error) {
	switch m := CapitalizationMode(mode); m {
	case CapitalizeTitle, CapitalizeUpper, CapitalizeLower, CapitalizeFirstLetter:
		return Capitalize{Mode: m}, nil
	}
	return Capitalize{}, fmt.Errorf("unknown capitalization type %q", mode)
}

func (o Capitalize) textOp() {}

func (o Capitalize) Apply(current string) string {
	switch o.Mode {
	case CapitalizeUpper:
		return strings.ToUpper(current)
	case CapitalizeLower:
		return strings.ToLower(current)
	case CapitalizeFirstLetter:
		return upperFirst(strings.ToLower(current))
	case CapitalizeTitle:
		words := strings.Fields(strings.ToLower(current))
		for i, w := range words {
			words[i] = upperFirst(w)
		}
		return strings.Join(words, " ")
	}
	return current
}

func upperFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// Truncate keeps at most Length runes.
type Truncate struct{ Length int }

func NewTruncate(length string) (Truncate, error) {
	n, err := strconv.Atoi(strings.TrimSpace(length))
	if err != nil {
		return Truncate{}, fmt.Errorf("number of characters must be an integer: %w", err)
	}
	if n <= 0 {
		return Truncate{}, fmt.Errorf("number of characters must be positive, got %d", n)
	}
	return Truncate{Length: n}, nil
}

func (o Truncate) textOp() {}

func (o Truncate) Apply(current string) string {
	runes := []rune(current)
	if len(runes) <= o.Length {
		return current
	}
	return string(runes[:o.Length])
}

// SetText replaces the whole value.
type SetText struct{ Text string }

func (o SetText) textOp() {}

func (o SetText) Apply(string) string { return o.Text }
