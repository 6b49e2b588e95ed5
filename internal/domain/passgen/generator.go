package passgen

import (
	"math/rand/v2"
	"strings"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator draws passwords from a Source. The default source is the
// math/rand/v2 global generator, which is not cryptographically secure.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

var defaultGenerator = NewGenerator(nil)

// Generate produces a password for policy using the default generator.
func Generate(policy Policy) (string, error) {
	return defaultGenerator.Generate(policy)
}

// Generate produces a password of exactly policy.Length characters that
// contains at least one character of every enabled class.
func (g *Generator) Generate(policy Policy) (string, error) {
	if policy.Length < MinLength || policy.Length > MaxLength {
		return "", ErrInvalidLength
	}
	return g.generate(policy.Length, policy.classes())
}

func (g *Generator) generate(length int, classes []string) (string, error) {
	if len(classes) == 0 {
		return "", ErrNoCharacterClassSelected
	}

	alphabet := strings.Join(classes, "")
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[g.src.IntN(len(alphabet))]
	}

	repaired := make([]bool, length)
	for _, set := range classes {
		if strings.ContainsAny(string(out), set) {
			continue
		}
		pos := g.repairPosition(out, repaired, classes)
		out[pos] = set[g.src.IntN(len(set))]
		repaired[pos] = true
	}

	return string(out), nil
}

// repairPosition prefers a position that was not repaired yet and whose
// character is not the only one of its class. With fewer positions than
// classes it degrades to any position, so later classes overwrite earlier ones.
func (g *Generator) repairPosition(out []byte, repaired []bool, classes []string) int {
	counts := make([]int, len(classes))
	for _, c := range out {
		if idx := classOf(c, classes); idx >= 0 {
			counts[idx]++
		}
	}

	var spare, free []int
	for i, c := range out {
		if repaired[i] {
			continue
		}
		free = append(free, i)
		if idx := classOf(c, classes); idx >= 0 && counts[idx] > 1 {
			spare = append(spare, i)
		}
	}

	switch {
	case len(spare) > 0:
		return spare[g.src.IntN(len(spare))]
	case len(free) > 0:
		return free[g.src.IntN(len(free))]
	default:
		return g.src.IntN(len(out))
	}
}

func classOf(c byte, classes []string) int {
	for i, set := range classes {
		if strings.IndexByte(set, c) >= 0 {
			return i
		}
	}
	return -1
}
