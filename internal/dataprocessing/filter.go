package dataprocessing

import (
	"sort"

	"github.com/hashicorp/go-set/v2"

	"procurepulse/pkg/contracts/domain"
)

// choice is either "every value" or an explicit set of values.
// The zero value selects every value.
type choice struct {
	explicit bool
	members  *set.Set[string]
}

func explicitChoice(values []string) choice {
	return choice{explicit: true, members: set.From(values)}
}

// IsAll reports whether every value is selected
func (c choice) IsAll() bool {
	return !c.explicit
}

// Members returns the explicit members in ascending order; nil when IsAll
func (c choice) Members() []string {
	if !c.explicit {
		return nil
	}
	out := []string{}
	if c.members != nil {
		out = append(out, c.members.Slice()...)
	}
	sort.Strings(out)
	return out
}

// admits reports whether v survives the filter. Empty values never survive,
// not even when every value is selected.
func (c choice) admits(v string) bool {
	if v == "" {
		return false
	}
	if !c.explicit {
		return true
	}
	return c.members != nil && c.members.Contains(v)
}

// PlantSelection selects plant codes
type PlantSelection struct{ choice }

// AllPlants selects every plant present in the working set
func AllPlants() PlantSelection { return PlantSelection{} }

// ExplicitPlants selects only the given plants; no arguments selects none
func ExplicitPlants(plants ...string) PlantSelection {
	return PlantSelection{explicitChoice(plants)}
}

// GroupSelection selects purchasing groups
type GroupSelection struct{ choice }

// AllGroups selects every purchasing group present in the working set
func AllGroups() GroupSelection { return GroupSelection{} }

// ExplicitGroups selects only the given groups; no arguments selects none
func ExplicitGroups(groups ...string) GroupSelection {
	return GroupSelection{explicitChoice(groups)}
}

// Selection holds the filter choices for one render. The zero value selects
// the most recent year, all plants and all groups.
type Selection struct {
	// Year narrows to one order year; zero means the most recent year present
	Year   int
	Plants PlantSelection
	Groups GroupSelection
}

// YearOptions returns the distinct order years, most recent first
func YearOptions(records []domain.OrderRecord) []int {
	seen := make(map[int]struct{})
	years := []int{}
	for _, r := range records {
		y, ok := r.OrderYear()
		if !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// FilterByYear keeps rows whose order date falls in year. Rows without an
// order date are dropped.
func FilterByYear(records []domain.OrderRecord, year int) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0, len(records))
	for _, r := range records {
		if y, ok := r.OrderYear(); ok && y == year {
			out = append(out, r)
		}
	}
	return out
}

// PlantOptions returns the distinct non-empty plants in first-seen order
func PlantOptions(records []domain.OrderRecord) []string {
	return distinct(records, func(r domain.OrderRecord) string { return r.Plant })
}

// FilterByPlants keeps rows whose plant is selected
func FilterByPlants(records []domain.OrderRecord, sel PlantSelection) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0, len(records))
	for _, r := range records {
		if sel.admits(r.Plant) {
			out = append(out, r)
		}
	}
	return out
}

// GroupOptions returns the distinct non-empty purchasing groups, sorted
func GroupOptions(records []domain.OrderRecord) []string {
	groups := distinct(records, func(r domain.OrderRecord) string { return r.PurchasingGroup })
	sort.Strings(groups)
	return groups
}

// FilterByGroups keeps rows whose purchasing group is selected
func FilterByGroups(records []domain.OrderRecord, sel GroupSelection) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0, len(records))
	for _, r := range records {
		if sel.admits(r.PurchasingGroup) {
			out = append(out, r)
		}
	}
	return out
}

// ApplyFilters runs year, plant and group filters in that order. The options
// of each stage are computed from the output of the previous stage. When no
// row has an order date the year stage is skipped.
func ApplyFilters(records []domain.OrderRecord, sel Selection) ([]domain.OrderRecord, domain.FilterOptions) {
	opts := domain.FilterOptions{Years: YearOptions(records)}

	if len(opts.Years) > 0 {
		year := sel.Year
		if year == 0 {
			year = opts.Years[0]
		}
		opts.SelectedYear = year
		records = FilterByYear(records, year)
	}

	opts.Plants = PlantOptions(records)
	records = FilterByPlants(records, sel.Plants)

	opts.Groups = GroupOptions(records)
	records = FilterByGroups(records, sel.Groups)

	return records, opts
}

func distinct(records []domain.OrderRecord, key func(domain.OrderRecord) string) []string {
	seen := set.New[string](0)
	out := []string{}
	for _, r := range records {
		v := key(r)
		if v == "" || seen.Contains(v) {
			continue
		}
		seen.Insert(v)
		out = append(out, v)
	}
	return out
}
