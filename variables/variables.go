package variables

import (
	"errors"
	"fmt"
	"time"

	"sse-journal/model"
)

// Built-in variables keep fixed ids so persisted parameters find their
// evaluator even after the user renamed them.
const (
	GameTimeID  = 1
	LocalTimeID = 2

	firstUserID = 100
)

var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrNotDeletable    = errors.New("variable cannot be deleted")
)

const gameTimeHelp = `Similar to Local time, with calendar specific conversions:
EY, Ey, EC, G and g are the era year (e.g. 4E201)
b or lm is the month name (e.g. First Seed)
B or bm is the birth sign of the month (e.g. The Mage)
h or am is the Argonian month name (e.g. Hist-Dooka (Mature Hist))
a is the short day name (e.g. Tir), A or wd the long one (e.g. Middas)
c, Ec, x, Ex, X and EX are removed`

const localTimeHelp = "strftime conversions, see https://en.cppreference.com/w/cpp/chrono/c/strftime"

type evaluator func(params string) string

// Set holds the built-in and user variables in display order.
type Set struct {
	vars  []*model.Variable
	evals map[int]evaluator
	next  int
}

// NewSet returns the built-in variables. now may be nil for time.Now.
func NewSet(clock GameClock, now func() time.Time) *Set {
	if now == nil {
		now = time.Now
	}
	s := &Set{
		evals: map[int]evaluator{
			GameTimeID: func(params string) string {
				return FormatGameTime(params, clock)
			},
			LocalTimeID: func(params string) string {
				return Format(params, now(), nil)
			},
		},
		next: firstUserID,
	}
	s.vars = []*model.Variable{
		{ID: GameTimeID, Source: GameTimeID, Name: "Game time", Params: "%r %A, day %e of %b, %g", Help: gameTimeHelp},
		{ID: LocalTimeID, Source: LocalTimeID, Name: "Local time", Params: "%X %x", Help: localTimeHelp},
	}
	return s
}

func (s *Set) List() []*model.Variable {
	return s.vars
}

func (s *Set) Get(id int) *model.Variable {
	for _, v := range s.vars {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Add creates a user variable running the evaluator of source.
func (s *Set) Add(source int, name, params string) (*model.Variable, error) {
	return s.add(s.next, source, name, params)
}

func (s *Set) add(id, source int, name, params string) (*model.Variable, error) {
	if _, ok := s.evals[source]; !ok {
		return nil, fmt.Errorf("%w: source %d", ErrUnknownVariable, source)
	}
	if s.Get(id) != nil {
		return nil, fmt.Errorf("variable %d already exists", id)
	}
	base := s.Get(source)
	v := &model.Variable{
		ID:        id,
		Source:    source,
		Deletable: true,
		Name:      name,
		Params:    params,
		Help:      base.Help,
	}
	s.vars = append(s.vars, v)
	if id >= s.next {
		s.next = id + 1
	}
	return v, nil
}

func (s *Set) Remove(id int) error {
	for i, v := range s.vars {
		if v.ID != id {
			continue
		}
		if !v.Deletable {
			return fmt.Errorf("%w: %s", ErrNotDeletable, v.Name)
		}
		s.vars = append(s.vars[:i], s.vars[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownVariable, id)
}

// Evaluate renders v with params. It never fails: a variable without an
// evaluator renders as NotAvailable.
func (s *Set) Evaluate(v *model.Variable, params string) string {
	eval, ok := s.evals[v.Source]
	if !ok {
		return NotAvailable
	}
	return eval(params)
}

// Render evaluates the variable id with its own parameters.
func (s *Set) Render(id int) (string, error) {
	v := s.Get(id)
	if v == nil {
		return "", fmt.Errorf("%w: %d", ErrUnknownVariable, id)
	}
	return s.Evaluate(v, v.Params), nil
}
