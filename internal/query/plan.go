package query

// Plan is an ordered list of named subqueries plus the terminal query.
// Order matters only insofar as later fragments may reference earlier
// aliases; that dependency is textual and not enforced here.
type Plan struct {
	Name      string     `yaml:"name"`
	Title     string     `yaml:"title"`
	Fragments []Fragment `yaml:"fragments"`
	Final     string     `yaml:"final"`
}

// SQL renders the plan as a single executable statement.
func (p Plan) SQL() (string, error) {
	return BuildCTE(p.Fragments, p.Final)
}

// Extend derives a new plan that shares this plan's fragments, appends the
// given ones, and replaces the terminal query. The receiver is not mutated.
func (p Plan) Extend(frags []Fragment, final string) Plan {
	combined := make([]Fragment, 0, len(p.Fragments)+len(frags))
	combined = append(combined, p.Fragments...)
	combined = append(combined, frags...)
	return Plan{
		Name:      p.Name,
		Title:     p.Title,
		Fragments: combined,
		Final:     final,
	}
}

// Validate renders the plan and discards the result, reporting any
// composition error without executing anything.
func (p Plan) Validate() error {
	_, err := p.SQL()
	return err
}
