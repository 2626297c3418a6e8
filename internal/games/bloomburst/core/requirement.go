package core

import (
	"fmt"
	"sort"
	"strings"
)

// Requirement is an order an arrangement must satisfy. It is immutable once
// built; every clause must hold for the order to be fulfilled.
type Requirement struct {
	attrs         map[string]string
	minCounts     map[string]int
	minDensity    float64
	minSymmetry   float64
	coverageLimit int
}

// RequirementSpec is the plain-data form of a Requirement, used by level files
// and persistence.
type RequirementSpec struct {
	Attributes    map[string]string `json:"attributes,omitempty"`
	MinCounts     map[string]int    `json:"min_counts,omitempty"`
	MinDensity    float64           `json:"min_density,omitempty"`
	MinSymmetry   float64           `json:"min_symmetry,omitempty"`
	CoverageLimit int               `json:"coverage_limit,omitempty"` // Coverage must stay below; 0 disables
}

// NewRequirement builds an immutable requirement from spec.
func NewRequirement(spec RequirementSpec) Requirement {
	r := Requirement{
		attrs:         make(map[string]string, len(spec.Attributes)),
		minCounts:     make(map[string]int, len(spec.MinCounts)),
		minDensity:    spec.MinDensity,
		minSymmetry:   spec.MinSymmetry,
		coverageLimit: spec.CoverageLimit,
	}
	for k, v := range spec.Attributes {
		r.attrs[k] = v
	}
	for k, v := range spec.MinCounts {
		if v > 0 {
			r.minCounts[k] = v
		}
	}
	return r
}

// Spec returns a copy of the requirement's clauses.
func (r Requirement) Spec() RequirementSpec {
	spec := RequirementSpec{
		MinDensity:    r.minDensity,
		MinSymmetry:   r.minSymmetry,
		CoverageLimit: r.coverageLimit,
	}
	if len(r.attrs) > 0 {
		spec.Attributes = make(map[string]string, len(r.attrs))
		for k, v := range r.attrs {
			spec.Attributes[k] = v
		}
	}
	if len(r.minCounts) > 0 {
		spec.MinCounts = make(map[string]int, len(r.minCounts))
		for k, v := range r.minCounts {
			spec.MinCounts[k] = v
		}
	}
	return spec
}

// Attr returns the required value for an attribute, if any.
func (r Requirement) Attr(name string) (string, bool) {
	v, ok := r.attrs[name]
	return v, ok
}

// IsOpen reports whether the requirement has no clauses at all.
func (r Requirement) IsOpen() bool {
	return len(r.attrs) == 0 && len(r.minCounts) == 0 &&
		r.minDensity <= 0 && r.minSymmetry <= 0 && r.coverageLimit <= 0
}

// Describe returns one human-readable line per clause, in a stable order.
func (r Requirement) Describe() []string {
	if r.IsOpen() {
		return []string{"No specific requirements. Create a beautiful arrangement!"}
	}

	lines := make([]string, 0)
	for _, k := range sortedKeys(r.attrs) {
		lines = append(lines, fmt.Sprintf("Must have %s: %s", k, r.attrs[k]))
	}
	countKeys := make([]string, 0, len(r.minCounts))
	for k := range r.minCounts {
		countKeys = append(countKeys, k)
	}
	sort.Strings(countKeys)
	for _, k := range countKeys {
		lines = append(lines, fmt.Sprintf("At least %d × %s", r.minCounts[k], k))
	}
	if r.minDensity > 0 {
		lines = append(lines, fmt.Sprintf("Density at least %.0f%%", r.minDensity))
	}
	if r.minSymmetry > 0 {
		lines = append(lines, fmt.Sprintf("Symmetry at least %.0f%%", r.minSymmetry))
	}
	if r.coverageLimit > 0 {
		lines = append(lines, fmt.Sprintf("Creeper coverage below %d", r.coverageLimit))
	}
	return lines
}

// String joins Describe with "; ".
func (r Requirement) String() string {
	return strings.Join(r.Describe(), "; ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Generator draws random requirements from attribute domains.
type Generator struct {
	rng        Rand
	selectProb float64
}

// NewGenerator creates a generator that selects each attribute with
// probability 1/2.
func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng, selectProb: 0.5}
}

// Generate builds a requirement over a random subset of the attributes in
// domains. Attributes are visited in sorted order so a given random sequence
// always yields the same requirement. Attributes with an empty domain are skipped.
func (g *Generator) Generate(domains map[string][]string) Requirement {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make(map[string]string)
	for _, name := range names {
		values := domains[name]
		if len(values) == 0 {
			continue
		}
		if g.rng.Float64() >= g.selectProb {
			continue
		}
		attrs[name] = values[g.rng.Intn(len(values))]
	}
	return NewRequirement(RequirementSpec{Attributes: attrs})
}

// Evaluation is the outcome of checking an arrangement against a requirement.
type Evaluation struct {
	Fulfilled bool
	Message   string
	Failed    []string // One entry per violated clause
}

// Evaluate checks arrangement and scores against every clause of req.
func Evaluate(req Requirement, arrangement []PieceType, scores Scores) Evaluation {
	failed := make([]string, 0)

	for _, name := range sortedKeys(req.attrs) {
		want := req.attrs[name]
		present := make(map[string]bool)
		for _, p := range arrangement {
			if v, ok := p.Attr(name); ok {
				present[v] = true
			}
		}
		if !present[want] {
			failed = append(failed, fmt.Sprintf("missing %s %s", name, want))
		}
	}

	countKeys := make([]string, 0, len(req.minCounts))
	for k := range req.minCounts {
		countKeys = append(countKeys, k)
	}
	sort.Strings(countKeys)
	for _, id := range countKeys {
		if have := scores.Counts[id]; have < req.minCounts[id] {
			failed = append(failed, fmt.Sprintf("%s: %d of %d", id, have, req.minCounts[id]))
		}
	}

	if req.minDensity > 0 && scores.Density < req.minDensity {
		failed = append(failed, fmt.Sprintf("density %.1f%% below %.0f%%", scores.Density, req.minDensity))
	}
	if req.minSymmetry > 0 && scores.Symmetry < req.minSymmetry {
		failed = append(failed, fmt.Sprintf("symmetry %.1f%% below %.0f%%", scores.Symmetry, req.minSymmetry))
	}
	if req.coverageLimit > 0 && scores.Coverage >= req.coverageLimit {
		failed = append(failed, fmt.Sprintf("creeper coverage %d not below %d", scores.Coverage, req.coverageLimit))
	}

	if len(failed) == 0 {
		return Evaluation{Fulfilled: true, Message: "The arrangement fulfills the order!"}
	}
	return Evaluation{
		Fulfilled: false,
		Message:   "The arrangement does not meet the requirements: " + strings.Join(failed, ", "),
		Failed:    failed,
	}
}
