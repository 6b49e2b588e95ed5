package passgen

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Generator {
	return NewGenerator(rand.New(rand.NewPCG(1, 2)))
}

func TestGenerate_AllClassesPresent(t *testing.T) {
	g := seeded()
	policy := DefaultPolicy()

	for i := 0; i < 1000; i++ {
		pw, err := g.Generate(policy)
		require.NoError(t, err)
		require.Len(t, pw, 16)
		assert.True(t, strings.ContainsAny(pw, UppercaseSet), pw)
		assert.True(t, strings.ContainsAny(pw, LowercaseSet), pw)
		assert.True(t, strings.ContainsAny(pw, DigitSet), pw)
		assert.True(t, strings.ContainsAny(pw, SymbolSet), pw)
	}
}

func TestGenerate_MinimumLengthAllClasses(t *testing.T) {
	g := seeded()
	policy := DefaultPolicy()
	policy.Length = MinLength

	for i := 0; i < 1000; i++ {
		pw, err := g.Generate(policy)
		require.NoError(t, err)
		require.Len(t, pw, MinLength)
		for _, set := range policy.classes() {
			assert.True(t, strings.ContainsAny(pw, set), pw)
		}
	}
}

func TestGenerate_NoClasses(t *testing.T) {
	pw, err := Generate(Policy{Length: 16})

	assert.ErrorIs(t, err, ErrNoCharacterClassSelected)
	assert.Empty(t, pw)
}

func TestGenerate_InvalidLength(t *testing.T) {
	for _, length := range []int{0, 3, 129, -1} {
		policy := DefaultPolicy()
		policy.Length = length

		_, err := Generate(policy)
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", length)
	}
}

func TestGenerate_SingleClass(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		set    string
	}{
		{name: "uppercase", policy: Policy{Length: 32, IncludeUppercase: true}, set: UppercaseSet},
		{name: "lowercase", policy: Policy{Length: 32, IncludeLowercase: true}, set: LowercaseSet},
		{name: "digits", policy: Policy{Length: 32, IncludeDigits: true}, set: DigitSet},
		{name: "symbols", policy: Policy{Length: 32, IncludeSymbols: true}, set: SymbolSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw, err := seeded().Generate(tt.policy)
			require.NoError(t, err)
			assert.Len(t, pw, 32)
			for _, c := range pw {
				assert.Contains(t, tt.set, string(c))
			}
		})
	}
}

func TestGenerate_MaxLength(t *testing.T) {
	policy := DefaultPolicy()
	policy.Length = MaxLength

	pw, err := seeded().Generate(policy)
	require.NoError(t, err)
	assert.Len(t, pw, MaxLength)
}

func TestGenerate_ShorterThanClassCount(t *testing.T) {
	g := seeded()
	classes := DefaultPolicy().classes()

	for i := 0; i < 100; i++ {
		pw, err := g.generate(2, classes)
		require.NoError(t, err)
		require.Len(t, pw, 2)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := NewGenerator(rand.New(rand.NewPCG(7, 7))).Generate(DefaultPolicy())
	require.NoError(t, err)
	b, err := NewGenerator(rand.New(rand.NewPCG(7, 7))).Generate(DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr error
	}{
		{name: "default", policy: DefaultPolicy()},
		{name: "too short", policy: Policy{Length: 3, IncludeDigits: true}, wantErr: ErrInvalidLength},
		{name: "too long", policy: Policy{Length: 129, IncludeDigits: true}, wantErr: ErrInvalidLength},
		{name: "no classes", policy: Policy{Length: 16}, wantErr: ErrNoCharacterClassSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			assert.ErrorIs(t, err, tt.wantErr)

			_, genErr := seeded().Generate(tt.policy)
			assert.ErrorIs(t, genErr, tt.wantErr)
		})
	}
}
