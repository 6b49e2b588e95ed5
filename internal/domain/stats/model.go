package stats

// StrengthBreakdown counts passwords per strength bucket.
type StrengthBreakdown struct {
	VeryWeak   int `json:"veryWeak"`
	Weak       int `json:"weak"`
	Medium     int `json:"medium"`
	Strong     int `json:"strong"`
	VeryStrong int `json:"veryStrong"`
}

type Stats struct {
	Total          int               `json:"total"`
	Strength       StrengthBreakdown `json:"strength"`
	Duplicates     int               `json:"duplicates" doc:"Distinct password values used by more than one entry"`
	AverageLength  int               `json:"average_length" doc:"Rounded to the nearest character"`
	ShortPasswords int               `json:"short_passwords" doc:"Shorter than 8 characters"`
	LongPasswords  int               `json:"long_passwords" doc:"Longer than 16 characters"`
	Breached       *int              `json:"breached,omitempty" doc:"Present only when breach checking was requested"`
}
