package store

import (
	"sort"
	"sync"
	"time"

	"energy_consumption/internal/model"
)

// Store holds the monthly series in memory, indexed by category.
type Store struct {
	mu     sync.RWMutex
	points map[model.Category][]model.MonthlyPoint // sorted by month
}

func New() *Store {
	return &Store{
		points: make(map[model.Category][]model.MonthlyPoint),
	}
}

// AddPoints adds points, then re-sorts each affected category by month.
func (s *Store) AddPoints(points []model.MonthlyPoint) {
	if len(points) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range points {
		s.points[p.Category] = append(s.points[p.Category], p)
	}

	seen := make(map[model.Category]bool)
	for _, p := range points {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		series := s.points[p.Category]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Time().Before(series[j].Time())
		})
	}
}

// Categories returns the categories holding data, in model.CategoryOrder
// first and any others alphabetically after.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]model.Category, 0, len(s.points))
	known := make(map[model.Category]bool)
	for _, c := range model.CategoryOrder {
		known[c] = true
		if len(s.points[c]) > 0 {
			cats = append(cats, c)
		}
	}

	var extra []model.Category
	for c, pts := range s.points {
		if !known[c] && len(pts) > 0 {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(cats, extra...)
}

// PointCount returns the number of points for a category.
func (s *Store) PointCount(c model.Category) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points[c])
}

// TimeRange returns the first and last month covered by a category.
func (s *Store) TimeRange(c model.Category) (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pts := s.points[c]
	if len(pts) == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{
		Start: pts[0].Time(),
		End:   pts[len(pts)-1].Time(),
	}, true
}

// GlobalTimeRange returns the union of all categories' time ranges.
func (s *Store) GlobalTimeRange() (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var start, end time.Time
	first := true

	for _, pts := range s.points {
		if len(pts) == 0 {
			continue
		}
		pStart := pts[0].Time()
		pEnd := pts[len(pts)-1].Time()

		if first || pStart.Before(start) {
			start = pStart
		}
		if first || pEnd.After(end) {
			end = pEnd
		}
		first = false
	}

	if first {
		return model.TimeRange{}, false
	}
	return model.TimeRange{Start: start, End: end}, true
}

// PointsInRange returns a category's points between start (inclusive) and end (exclusive).
func (s *Store) PointsInRange(c model.Category, start, end time.Time) []model.MonthlyPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.points[c]
	if len(all) == 0 {
		return nil
	}

	startIdx := sort.Search(len(all), func(i int) bool {
		return !all[i].Time().Before(start)
	})
	endIdx := sort.Search(len(all), func(i int) bool {
		return !all[i].Time().Before(end)
	})

	if startIdx >= endIdx {
		return nil
	}

	result := make([]model.MonthlyPoint, endIdx-startIdx)
	copy(result, all[startIdx:endIdx])
	return result
}

// PointsInYear returns a category's points for one calendar year.
func (s *Store) PointsInYear(c model.Category, year int) []model.MonthlyPoint {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.PointsInRange(c, start, start.AddDate(1, 0, 0))
}

// Years returns the distinct years a category has data for, ascending.
func (s *Store) Years(c model.Category) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var years []int
	for _, p := range s.points[c] {
		if len(years) == 0 || years[len(years)-1] != p.Year {
			years = append(years, p.Year)
		}
	}
	return years
}

// All returns every point ordered by month, then category.
func (s *Store) All() []model.MonthlyPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []model.MonthlyPoint
	for _, pts := range s.points {
		all = append(all, pts...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		ti, tj := all[i].Time(), all[j].Time()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return all[i].Category < all[j].Category
	})
	return all
}
