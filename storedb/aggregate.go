package storedb

import "sort"

// Stage is one step of an aggregation pipeline, applied over the output of
// the previous stage.
type Stage interface {
	apply(in []*Record) []*Record
}

// Pipeline is an ordered sequence of stages executed over a snapshot of a
// collection's records.
type Pipeline []Stage

type matchStage struct {
	pred Predicate
}

// Match filters the stage input with the same predicate semantics as Find.
func Match(pred Predicate) Stage {
	return matchStage{pred: pred}
}

func (s matchStage) apply(in []*Record) []*Record {
	var out []*Record
	for _, r := range in {
		if s.pred.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

type groupCountStage struct {
	field string
}

// GroupCount groups records by the value of one field, emitting one record
// per distinct value with its member count: {_id, count}. Group order is
// first-seen order.
func GroupCount(field string) Stage {
	return groupCountStage{field: field}
}

func (s groupCountStage) apply(in []*Record) []*Record {
	groups := make(map[string]*Record)
	var order []string
	for _, r := range in {
		key := r.Text(s.field)
		g, ok := groups[key]
		if !ok {
			g = NewRecord().Set("_id", String(key)).Set("count", Number(0))
			groups[key] = g
			order = append(order, key)
		}
		v, _ := g.Get("count")
		g.Set("count", Number(v.Num()+1))
	}
	out := make([]*Record, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}

type sortStage struct {
	field      string
	descending bool
}

// SortBy stable-sorts the stage input by one field, ascending unless
// descending is set. Numeric values compare numerically; everything else
// compares by text.
func SortBy(field string, descending bool) Stage {
	return sortStage{field: field, descending: descending}
}

func (s sortStage) apply(in []*Record) []*Record {
	out := make([]*Record, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		less := valueLess(out[i], out[j], s.field)
		if s.descending {
			return valueLess(out[j], out[i], s.field)
		}
		return less
	})
	return out
}

func valueLess(a, b *Record, field string) bool {
	va, oka := a.Get(field)
	vb, okb := b.Get(field)
	if oka && okb && va.Kind() == KindNumber && vb.Kind() == KindNumber {
		return va.Num() < vb.Num()
	}
	return a.Text(field) < b.Text(field)
}
