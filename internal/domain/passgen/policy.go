package passgen

const (
	MinLength     = 4
	MaxLength     = 128
	DefaultLength = 16
)

const (
	UppercaseSet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseSet = "abcdefghijklmnopqrstuvwxyz"
	DigitSet     = "0123456789"
	SymbolSet    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Policy describes what Generate should produce.
type Policy struct {
	Length           int  `json:"length"`
	IncludeUppercase bool `json:"uppercase"`
	IncludeLowercase bool `json:"lowercase"`
	IncludeDigits    bool `json:"numbers"`
	IncludeSymbols   bool `json:"special"`
}

// DefaultPolicy is 16 characters with every class enabled.
func DefaultPolicy() Policy {
	return Policy{
		Length:           DefaultLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeDigits:    true,
		IncludeSymbols:   true,
	}
}

// Validate reports the error Generate would return for p without drawing.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return ErrInvalidLength
	}
	if len(p.classes()) == 0 {
		return ErrNoCharacterClassSelected
	}
	return nil
}

// classes returns the enabled class sets in repair order.
func (p Policy) classes() []string {
	var sets []string
	if p.IncludeUppercase {
		sets = append(sets, UppercaseSet)
	}
	if p.IncludeLowercase {
		sets = append(sets, LowercaseSet)
	}
	if p.IncludeDigits {
		sets = append(sets, DigitSet)
	}
	if p.IncludeSymbols {
		sets = append(sets, SymbolSet)
	}
	return sets
}
