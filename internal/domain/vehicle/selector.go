// internal/domain/vehicle/selector.go
package vehicle

import (
	"context"
	"sync"
	"time"
)

// State names a step of the car picker
type State string

const (
	StateBrandSearch State = "brand-search"
	StateModelList   State = "model-list"
	StateYearList    State = "year-list"
	StateSelected    State = "selected"
)

// Selection is the completed brand/model/year choice
type Selection struct {
	CarBrand string `json:"carBrand"`
	CarModel string `json:"carModel"`
	CarYear  int    `json:"carYear"`
}

// Snapshot is the externally visible picker state
type Snapshot struct {
	State     State     `json:"state"`
	Query     string    `json:"query"`
	Brands    []string  `json:"brands"`
	Models    []string  `json:"models"`
	Years     []int     `json:"years"`
	Selection Selection `json:"selection"`
}

// Selector is the multi-step car picker state machine:
// brand-search -> model-list -> year-list -> selected.
// Brand search is debounced; a superseded search has its result discarded
// rather than cancelled. Lookup failures leave the machine in its current
// state with an empty option list.
type Selector struct {
	mu         sync.Mutex
	state      State
	query      string
	brands     []string
	models     []string
	years      []int
	selection  Selection
	fitment    Fitment
	debounce   time.Duration
	timer      *time.Timer
	generation int
	onUpdate   func(Snapshot)
}

// NewSelector creates a picker in the brand-search state
func NewSelector(fitment Fitment, debounce time.Duration) *Selector {
	return &Selector{
		state:    StateBrandSearch,
		fitment:  fitment,
		debounce: debounce,
	}
}

// OnUpdate registers a callback invoked after an asynchronous brand search
// lands. Used by consumers that render the option list.
func (s *Selector) OnUpdate(fn func(Snapshot)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// Input feeds the free-text brand field. Editing the text while not in
// brand-search resets the whole machine back to brand-search. Two or more
// characters schedule a debounced lookup; a shorter query cancels any
// pending one.
func (s *Selector) Input(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBrandSearch {
		s.resetLocked()
	}

	s.query = text
	s.generation++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len([]rune(text)) < 2 {
		s.brands = nil
		return
	}

	gen := s.generation
	query := text
	s.timer = time.AfterFunc(s.debounce, func() {
		s.searchBrands(gen, query)
	})
}

// SelectBrand moves to model-list and fetches the brand's models
func (s *Selector) SelectBrand(ctx context.Context, brand string) {
	s.mu.Lock()
	if s.state != StateBrandSearch {
		s.mu.Unlock()
		return
	}
	s.selection.CarBrand = brand
	s.state = StateModelList
	s.mu.Unlock()

	models, err := s.fitment.Models(ctx, brand)
	if err != nil {
		models = []string{}
	}

	s.mu.Lock()
	s.models = models
	s.mu.Unlock()
}

// SelectModel moves to year-list and fetches the model's years
func (s *Selector) SelectModel(ctx context.Context, model string) {
	s.mu.Lock()
	if s.state != StateModelList {
		s.mu.Unlock()
		return
	}
	s.selection.CarModel = model
	s.state = StateYearList
	s.mu.Unlock()

	years, err := s.fitment.Years(ctx, s.selection.CarBrand, model)
	if err != nil {
		years = []int{}
	}

	s.mu.Lock()
	s.years = years
	s.mu.Unlock()
}

// SelectYear completes the selection and closes the picker
func (s *Selector) SelectYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateYearList {
		return
	}
	s.selection.CarYear = year
	s.state = StateSelected
}

// Back returns to the previous step, clearing the state captured at the
// step being left. In brand-search it does nothing.
func (s *Selector) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateModelList:
		s.models = nil
		s.selection.CarBrand = ""
		s.state = StateBrandSearch
	case StateYearList:
		s.years = nil
		s.selection.CarModel = ""
		s.state = StateModelList
	case StateSelected:
		s.selection.CarYear = 0
		s.state = StateYearList
	}
}

// Reset returns the machine to its initial state
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Snapshot returns a copy of the current picker state
func (s *Selector) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Selector) snapshotLocked() Snapshot {
	return Snapshot{
		State:     s.state,
		Query:     s.query,
		Brands:    append([]string(nil), s.brands...),
		Models:    append([]string(nil), s.models...),
		Years:     append([]int(nil), s.years...),
		Selection: s.selection,
	}
}

func (s *Selector) resetLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.state = StateBrandSearch
	s.query = ""
	s.brands = nil
	s.models = nil
	s.years = nil
	s.selection = Selection{}
}

func (s *Selector) searchBrands(gen int, query string) {
	brands, err := s.fitment.SearchBrands(context.Background(), query)
	if err != nil {
		brands = []string{}
	}

	s.mu.Lock()
	if gen != s.generation {
		// A newer search superseded this one; drop the result
		s.mu.Unlock()
		return
	}
	s.brands = brands
	notify := s.onUpdate
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}
