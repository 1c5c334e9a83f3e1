package entities

// Plan is the outcome of one reconciliation pass over a domain
type Plan struct {
	Commands []string
	Warnings []string
}

// Empty reports whether the plan carries no command
func (p Plan) Empty() bool {
	return len(p.Commands) == 0
}

// Merge appends other to p, commands and warnings keeping their order
func (p Plan) Merge(other Plan) Plan {
	return Plan{
		Commands: append(append([]string{}, p.Commands...), other.Commands...),
		Warnings: append(append([]string{}, p.Warnings...), other.Warnings...),
	}
}

// Result is what a run reports back to the caller
type Result struct {
	Changed  bool     `json:"changed"`
	Commands []string `json:"commands"`
	Warnings []string `json:"warnings"`
}

// Add records a plan in the result
func (r *Result) Add(p Plan) {
	if r.Commands == nil {
		r.Commands = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	r.Commands = append(r.Commands, p.Commands...)
	r.Warnings = append(r.Warnings, p.Warnings...)
	if !p.Empty() {
		r.Changed = true
	}
}
