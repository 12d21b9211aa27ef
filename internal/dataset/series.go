package dataset

// SubgroupValue is the summed value of one subgroup inside a group.
type SubgroupValue struct {
	Name string
	Sum  float64
}

// Group is one y-axis category with its subgroup sums.
type Group struct {
	Name   string
	Values []SubgroupValue
}

// GroupedSeries is the ordered, aggregated form of a dataset.
type GroupedSeries struct {
	groups    []Group
	subgroups []string
}

// Aggregate sums rows by (group, subgroup). Groups keep the order in which
// they first appear; subgroups keep their first appearance across the whole
// dataset, and every group lists its subgroups in that shared order.
func Aggregate(points []DataPoint) GroupedSeries {
	var s GroupedSeries
	groupIdx := make(map[string]int)
	subIdx := make(map[string]int)
	sums := make(map[string]map[string]float64)

	for _, p := range points {
		if _, ok := groupIdx[p.Group]; !ok {
			groupIdx[p.Group] = len(s.groups)
			s.groups = append(s.groups, Group{Name: p.Group})
			sums[p.Group] = make(map[string]float64)
		}
		if _, ok := subIdx[p.Subgroup]; !ok {
			subIdx[p.Subgroup] = len(s.subgroups)
			s.subgroups = append(s.subgroups, p.Subgroup)
		}
		sums[p.Group][p.Subgroup] += p.Value
	}

	for i := range s.groups {
		g := &s.groups[i]
		for _, sub := range s.subgroups {
			if v, ok := sums[g.Name][sub]; ok {
				g.Values = append(g.Values, SubgroupValue{Name: sub, Sum: v})
			}
		}
	}
	return s
}

// Groups returns the groups in display order.
func (s GroupedSeries) Groups() []Group { return s.groups }

// GroupNames returns the ordered category domain.
func (s GroupedSeries) GroupNames() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.Name
	}
	return names
}

// Subgroups returns the ordered subgroup domain.
func (s GroupedSeries) Subgroups() []string {
	return append([]string(nil), s.subgroups...)
}

// Len is the number of groups.
func (s GroupedSeries) Len() int { return len(s.groups) }

// Sum returns the aggregated value for (group, subgroup).
func (s GroupedSeries) Sum(group, subgroup string) (float64, bool) {
	for _, g := range s.groups {
		if g.Name != group {
			continue
		}
		for _, v := range g.Values {
			if v.Name == subgroup {
				return v.Sum, true
			}
		}
	}
	return 0, false
}

// Max is the largest aggregated value.
func (s GroupedSeries) Max() float64 {
	var max float64
	for _, g := range s.groups {
		for _, v := range g.Values {
			if v.Sum > max {
				max = v.Sum
			}
		}
	}
	return max
}

// Validate checks that every group carries the full subgroup domain.
func (s GroupedSeries) Validate() error {
	for _, g := range s.groups {
		if len(g.Values) == len(s.subgroups) {
			continue
		}
		got := make([]string, len(g.Values))
		for i, v := range g.Values {
			got[i] = v.Name
		}
		return &InconsistentDomainError{Group: g.Name, Got: got, Want: s.Subgroups()}
	}
	return nil
}

// MaxValue returns the largest single row value.
func MaxValue(points []DataPoint) float64 {
	var max float64
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}
