package stats

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/slog"

	"windkey/internal/domain/breach"
	"windkey/internal/domain/passgen"
)

const (
	shortLength = 8
	longLength  = 16

	DefaultWorkers = 8
)

// PasswordSource yields the decrypted passwords of a user.
type PasswordSource interface {
	Secrets(ctx context.Context, userID int) ([]string, error)
}

type Servicer interface {
	Get(ctx context.Context, userID int, withBreaches bool) (Stats, error)
}

type Service struct {
	passwords PasswordSource
	checker   breach.Checker
	workers   int
	log       *slog.Logger
}

func NewService(passwords PasswordSource, checker breach.Checker, workers int, log *slog.Logger) *Service {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Service{
		passwords: passwords,
		checker:   checker,
		workers:   workers,
		log:       log.With(slog.String("component", "stats_service")),
	}
}

func (s *Service) Get(ctx context.Context, userID int, withBreaches bool) (Stats, error) {
	secrets, err := s.passwords.Secrets(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("load passwords: %w", err)
	}

	st := Compute(secrets)
	if !withBreaches || s.checker == nil {
		return st, nil
	}

	breached, err := s.countBreached(ctx, secrets)
	if err != nil {
		return Stats{}, err
	}
	st.Breached = &breached

	return st, nil
}

// countBreached checks every distinct password on a bounded pool.
// Lookup failures are logged and the password is counted as clean.
func (s *Service) countBreached(ctx context.Context, secrets []string) (int, error) {
	unique := make(map[string]int, len(secrets))
	for _, p := range secrets {
		unique[p]++
	}
	if len(unique) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg    sync.WaitGroup
		total atomic.Int64
	)

	for password, occurrences := range unique {
		password, occurrences := password, occurrences
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			res, err := s.checker.Check(ctx, password)
			if err != nil {
				s.log.Warn("breach lookup failed", slog.String("error", err.Error()))
				return
			}
			if res.Breached {
				total.Add(int64(occurrences))
			}
		})
		if err != nil {
			wg.Done()
			s.log.Error("failed to submit breach lookup", slog.String("error", err.Error()))
		}
	}
	wg.Wait()

	return int(total.Load()), nil
}

// Compute aggregates strength and reuse figures for a set of passwords.
func Compute(passwords []string) Stats {
	st := Stats{Total: len(passwords)}
	if len(passwords) == 0 {
		return st
	}

	seen := make(map[string]int, len(passwords))
	totalLength := 0

	for _, p := range passwords {
		seen[p]++

		n := utf8.RuneCountInString(p)
		totalLength += n
		if n < shortLength {
			st.ShortPasswords++
		}
		if n > longLength {
			st.LongPasswords++
		}

		switch passgen.Score(p).Label {
		case passgen.LabelVeryWeak:
			st.Strength.VeryWeak++
		case passgen.LabelWeak:
			st.Strength.Weak++
		case passgen.LabelMedium:
			st.Strength.Medium++
		case passgen.LabelStrong:
			st.Strength.Strong++
		case passgen.LabelVeryStrong:
			st.Strength.VeryStrong++
		}
	}

	// считаются различные значения, встречающиеся больше одного раза
	for _, count := range seen {
		if count > 1 {
			st.Duplicates++
		}
	}

	st.AverageLength = int(math.Round(float64(totalLength) / float64(len(passwords))))

	return st
}
