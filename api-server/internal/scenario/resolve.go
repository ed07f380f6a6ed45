package scenario

import (
	"strings"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
)

type rule struct {
	scenarioID string
	keywords   []string
}

// matches reports whether any keyword appears in the lowercased query
func (r rule) matches(lowerQuery string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(lowerQuery, kw) {
			return true
		}
	}
	return false
}

// Order matters: the first matching rule wins. Multi-city keywords go first
// so "Paris then Berlin" style queries never fall into a single-city rule.
var rules = []rule{
	{scenarioID: MultiCityID, keywords: []string{"multi-city", "multi city", "multicity", "paris", "amsterdam", "roadshow"}},
	{scenarioID: DayTripID, keywords: []string{"edinburgh", "day trip", "same day", "day-trip"}},
	{scenarioID: NewYorkID, keywords: []string{"new york", "nyc", "jfk", "conference"}},
	{scenarioID: BerlinID, keywords: []string{"berlin", "germany"}},
}

// Store is the read-only scenario catalog
type Store struct {
	byID  map[string]models.TripScenario
	order []string
}

// NewStore builds the catalog
func NewStore() *Store {
	s := &Store{byID: make(map[string]models.TripScenario, catalogCount)}
	for _, sc := range Catalog() {
		company, approver := DemoCompany, DemoApprover
		sc.Company = &company
		sc.Approver = &approver
		s.byID[sc.ID] = sc
		s.order = append(s.order, sc.ID)
	}
	return s
}

// Resolve maps a free-text query to a scenario. It never fails: queries that
// match no rule get the default scenario.
func (s *Store) Resolve(query string) models.TripScenario {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower != "" {
		for _, r := range rules {
			if r.matches(lower) {
				return s.byID[r.scenarioID]
			}
		}
	}
	return s.byID[DefaultID]
}

// Get returns a scenario by ID
func (s *Store) Get(id string) (models.TripScenario, bool) {
	sc, ok := s.byID[id]
	return sc, ok
}

// List returns every scenario in catalog order
func (s *Store) List() []models.TripScenario {
	out := make([]models.TripScenario, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
