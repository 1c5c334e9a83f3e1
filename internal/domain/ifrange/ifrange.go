// Package ifrange expands EdgeSwitch interface notation ("0/1",
// "0/4-0/6", "all") into interface identifiers and orders them.
package ifrange

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"github.com/carlosrabelo/edgesync/internal/util"
)

// All is the wildcard token meaning every interface of the observed set.
const All = "all"

// MaxIndex bounds both parts of a group/index identifier.
const MaxIndex = 4095

const (
	reasonSameGroup   = "interface range must be within same group"
	reasonWrongFormat = "wrong interface format"
	reasonDescending  = "interface range must be ascending"
	reasonOutOfRange  = "interface index out of range"
)

// Ref is a parsed group/index interface identifier.
type Ref struct {
	Group int
	Index int
}

func (r Ref) String() string {
	return fmt.Sprintf("%d/%d", r.Group, r.Index)
}

// Set is the result of expanding one token. When All is true the caller
// resolves it against the interfaces it knows about.
type Set struct {
	all  bool
	refs []Ref
}

// All reports whether the set is the wildcard.
func (s Set) All() bool {
	return s.all
}

// Refs returns the expanded interfaces in ascending order.
func (s Set) Refs() []Ref {
	return s.refs
}

// Names returns the expanded interfaces as strings.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.refs))
	for _, ref := range s.refs {
		names = append(names, ref.String())
	}
	return names
}

// Resolve returns Names, or known when the set is the wildcard.
func (s Set) Resolve(known []string) []string {
	if s.all {
		out := make([]string, len(known))
		copy(out, known)
		Sort(out)
		return out
	}
	return s.Names()
}

// ParseRef parses a single group/index identifier.
func ParseRef(token string) (Ref, bool) {
	group, index, found := strings.Cut(token, "/")
	if !found {
		return Ref{}, false
	}
	g, ok := parseNumber(group)
	if !ok {
		return Ref{}, false
	}
	i, ok := parseNumber(index)
	if !ok {
		return Ref{}, false
	}
	return Ref{Group: g, Index: i}, true
}

// Expand expands a token of the form "g/i", "g/a-g/b" or "all".
func Expand(token string) (Set, error) {
	start, end, all, err := parse(token)
	if err != nil {
		return Set{}, err
	}
	if all {
		return Set{all: true}, nil
	}
	refs := make([]Ref, 0, end.Index-start.Index+1)
	for i := start.Index; i <= end.Index; i++ {
		refs = append(refs, Ref{Group: start.Group, Index: i})
	}
	return Set{refs: refs}, nil
}

// Validate checks a token against the grammar without expanding it.
func Validate(token string) error {
	_, _, _, err := parse(token)
	return err
}

// parse returns the bounds of a token. A single interface has equal bounds.
func parse(token string) (start, end Ref, all bool, err error) {
	token = strings.TrimSpace(token)
	if token == All {
		return Ref{}, Ref{}, true, nil
	}

	from, to, isRange := strings.Cut(token, "-")
	if !isRange {
		to = from
	}
	start, okStart := ParseRef(from)
	end, okEnd := ParseRef(to)
	switch {
	case !okStart || !okEnd:
		return Ref{}, Ref{}, false, util.NewFormatError(reasonWrongFormat, token)
	case !inBounds(start) || !inBounds(end):
		return Ref{}, Ref{}, false, util.NewFormatError(reasonOutOfRange, token)
	case start.Group != end.Group:
		return Ref{}, Ref{}, false, util.NewFormatError(reasonSameGroup, token)
	case start.Index > end.Index:
		return Ref{}, Ref{}, false, util.NewFormatError(reasonDescending, token)
	}
	return start, end, false, nil
}

func inBounds(r Ref) bool {
	return r.Group <= MaxIndex && r.Index <= MaxIndex
}

// ExpandAll expands every token, resolving the wildcard against known.
// Duplicates are dropped; the first occurrence keeps its position.
func ExpandAll(tokens []string, known []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, token := range tokens {
		set, err := Expand(token)
		if err != nil {
			return nil, err
		}
		for _, name := range set.Resolve(known) {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out, nil
}

// IsPhysical reports whether name is a group/index identifier, which
// excludes LAG and VLAN routing interfaces.
func IsPhysical(name string) bool {
	_, ok := ParseRef(name)
	return ok
}

// Compare orders interface names by group then index. Names outside the
// group/index grammar sort after them in natural order.
func Compare(a, b string) int {
	ra, okA := ParseRef(a)
	rb, okB := ParseRef(b)
	switch {
	case okA && okB:
		if ra.Group != rb.Group {
			return ra.Group - rb.Group
		}
		return ra.Index - rb.Index
	case okA:
		return -1
	case okB:
		return 1
	}

	if a == b {
		return 0
	} else if natural.Less(a, b) {
		return -1
	}

	return 1
}

// Sort sorts interface names in place using Compare.
func Sort(names []string) {
	slices.SortFunc(names, Compare)
}

func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
