package passgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		wantScore int
		wantLabel Label
		wantColor Color
	}{
		{name: "empty", candidate: "", wantScore: 0, wantLabel: LabelVeryWeak, wantColor: ColorError},
		{name: "single lowercase", candidate: "a", wantScore: 20, wantLabel: LabelWeak, wantColor: ColorError},
		{name: "twelve lowercase hits medium boundary", candidate: "aaaaaaaaaaaa", wantScore: 40, wantLabel: LabelMedium, wantColor: ColorWarning},
		{name: "short mixed", candidate: "Ab1", wantScore: 60, wantLabel: LabelStrong, wantColor: ColorInfo},
		{name: "short all classes", candidate: "Ab1!", wantScore: 80, wantLabel: LabelVeryStrong, wantColor: ColorSuccess},
		{name: "all checks", candidate: "Aa1!Aa1!Aa1!Aa1!", wantScore: 100, wantLabel: LabelVeryStrong, wantColor: ColorSuccess},
		{name: "sixteen digits", candidate: strings.Repeat("7", 16), wantScore: 60, wantLabel: LabelStrong, wantColor: ColorInfo},
		{name: "unicode letters count as special", candidate: "пароль", wantScore: 20, wantLabel: LabelWeak, wantColor: ColorError},
		{name: "space is special", candidate: "a b", wantScore: 40, wantLabel: LabelMedium, wantColor: ColorWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.candidate)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantColor, got.Color)
		})
	}
}

func TestScore_Text(t *testing.T) {
	assert.Equal(t, "No password", Score("").Text)
	assert.Equal(t, "Medium", Score("aaaaaaaaaaaa").Text)
	assert.Equal(t, "Very Strong", Score("Aa1!Aa1!Aa1!Aa1!").Text)
}

func TestScore_LengthCountsRunes(t *testing.T) {
	// 12 runes, 24 bytes
	got := Score(strings.Repeat("é", 12))
	assert.Equal(t, 40, got.Score)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		label Label
	}{
		{0, LabelVeryWeak},
		{19, LabelVeryWeak},
		{20, LabelWeak},
		{39, LabelWeak},
		{40, LabelMedium},
		{59, LabelMedium},
		{60, LabelStrong},
		{79, LabelStrong},
		{80, LabelVeryStrong},
		{100, LabelVeryStrong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, classify(tt.score).Label, "score %d", tt.score)
	}
}
