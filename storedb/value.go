package storedb

import "strconv"

// Kind enumerates the types a stored field value can hold.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindList
)

// Value is a tagged union over the scalar types the store persists, plus a
// list of sub-records used for order dish lines.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []*Record
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func List(items []*Record) Value { return Value{kind: KindList, list: items} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Str() string { return v.str }

func (v Value) Num() float64 { return v.num }

func (v Value) IsTrue() bool { return v.b }

func (v Value) Items() []*Record { return v.list }

// Text is the canonical textual form of a value. It is what the codec writes
// to disk and, deliberately, what every predicate comparison operates on:
// matching is value-agnostic to keep the operator mini-language uniform.
// Range comparisons are therefore lexicographic, which is only chronological
// for the zero-padded HH:MM and YYYY-MM-DD fields — the only fields the
// application ever range-compares.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return encodeList(v.list)
	default:
		return v.str
	}
}

func (v Value) clone() Value {
	if v.kind != KindList {
		return v
	}
	items := make([]*Record, len(v.list))
	for i, it := range v.list {
		items[i] = it.Clone()
	}
	return Value{kind: KindList, list: items}
}
