package passgen

import "unicode/utf8"

// Label is a strength bucket.
type Label string

const (
	LabelVeryWeak   Label = "VeryWeak"
	LabelWeak       Label = "Weak"
	LabelMedium     Label = "Medium"
	LabelStrong     Label = "Strong"
	LabelVeryStrong Label = "VeryStrong"
)

// Color is the presentation tag attached to a Label.
type Color string

const (
	ColorError   Color = "error"
	ColorWarning Color = "warning"
	ColorInfo    Color = "info"
	ColorSuccess Color = "success"
)

const (
	pointsPerCheck = 20
	maxScore       = 100

	goodLength   = 12
	strongLength = 16

	noPasswordText = "No password"
)

// StrengthResult is the outcome of Score.
type StrengthResult struct {
	Score int    `json:"score" doc:"Strength score from 0 to 100"`
	Label Label  `json:"label" doc:"VeryWeak, Weak, Medium, Strong or VeryStrong"`
	Color Color  `json:"color" doc:"error, warning, info or success"`
	Text  string `json:"text" doc:"Human readable label"`
}

type bucket struct {
	below int
	label Label
	color Color
	text  string
}

// Buckets are half-open intervals ordered by their upper bound.
var buckets = []bucket{
	{below: 20, label: LabelVeryWeak, color: ColorError, text: "Very Weak"},
	{below: 40, label: LabelWeak, color: ColorError, text: "Weak"},
	{below: 60, label: LabelMedium, color: ColorWarning, text: "Medium"},
	{below: 80, label: LabelStrong, color: ColorInfo, text: "Strong"},
	{below: maxScore + 1, label: LabelVeryStrong, color: ColorSuccess, text: "Very Strong"},
}

// Score rates a candidate password with a six-check heuristic, 20 points per
// satisfied check. Character classes are ASCII only: any rune outside
// [A-Za-z0-9] counts as a special character.
func Score(candidate string) StrengthResult {
	if candidate == "" {
		return StrengthResult{
			Score: 0,
			Label: LabelVeryWeak,
			Color: ColorError,
			Text:  noPasswordText,
		}
	}

	length := utf8.RuneCountInString(candidate)
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	score := 0
	for _, ok := range []bool{
		length >= goodLength,
		hasUpper,
		hasLower,
		hasDigit,
		hasSpecial,
		length >= strongLength,
	} {
		if ok {
			score += pointsPerCheck
		}
	}
	score = min(max(score, 0), maxScore)

	return classify(score)
}

func classify(score int) StrengthResult {
	for _, b := range buckets {
		if score < b.below {
			return StrengthResult{Score: score, Label: b.label, Color: b.color, Text: b.text}
		}
	}
	last := buckets[len(buckets)-1]
	return StrengthResult{Score: score, Label: last.label, Color: last.color, Text: last.text}
}
