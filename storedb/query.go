package storedb

// Op is a comparison operator of the query mini-language.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpGt
	OpIn
)

// Cond compares a single field against a literal (or a list of literals for
// OpIn). Both operands are compared by their Text form; see Value.Text for
// the consequences of that.
type Cond struct {
	Field  string
	Op     Op
	Value  Value
	Values []Value
}

func Eq(field string, v Value) Cond { return Cond{Field: field, Op: OpEq, Value: v} }

func Ne(field string, v Value) Cond { return Cond{Field: field, Op: OpNe, Value: v} }

func Lt(field string, v Value) Cond { return Cond{Field: field, Op: OpLt, Value: v} }

func Gt(field string, v Value) Cond { return Cond{Field: field, Op: OpGt, Value: v} }

func In(field string, vs ...Value) Cond { return Cond{Field: field, Op: OpIn, Values: vs} }

// Predicate is a conjunction of conditions, optionally extended by a
// disjunction of alternative branches. When Or is non-empty the record must
// satisfy every Cond and at least one branch. Branches themselves carry no
// nested Or.
type Predicate struct {
	Conds []Cond
	Or    []Predicate
}

func Where(conds ...Cond) Predicate {
	return Predicate{Conds: conds}
}

// Any attaches OR branches to the predicate.
func (p Predicate) Any(branches ...Predicate) Predicate {
	p.Or = append(p.Or, branches...)
	return p
}

// Matches evaluates the predicate against a record. A field absent from the
// record fails every positive operator; only Ne treats absence as a match.
func (p Predicate) Matches(r *Record) bool {
	for _, c := range p.Conds {
		if !c.matches(r) {
			return false
		}
	}
	if len(p.Or) == 0 {
		return true
	}
	for _, b := range p.Or {
		if b.Matches(r) {
			return true
		}
	}
	return false
}

func (c Cond) matches(r *Record) bool {
	v, ok := r.Get(c.Field)
	if !ok {
		return c.Op == OpNe
	}
	got := v.Text()
	switch c.Op {
	case OpEq:
		return got == c.Value.Text()
	case OpNe:
		return got != c.Value.Text()
	case OpLt:
		return got < c.Value.Text()
	case OpGt:
		return got > c.Value.Text()
	case OpIn:
		for _, w := range c.Values {
			if got == w.Text() {
				return true
			}
		}
	}
	return false
}
