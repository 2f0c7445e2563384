package storedb

// Record is an ordered mapping from field name to Value: the unit of
// storage. Field order is insertion order and determines column order in the
// persisted form.
type Record struct {
	order []string
	vals  map[string]Value
}

func NewRecord() *Record {
	return &Record{vals: make(map[string]Value)}
}

// Set stores a value under field, appending the field to the record's order
// when it is new. Returns the record for chaining.
func (r *Record) Set(field string, v Value) *Record {
	if _, ok := r.vals[field]; !ok {
		r.order = append(r.order, field)
	}
	r.vals[field] = v
	return r
}

func (r *Record) Get(field string) (Value, bool) {
	v, ok := r.vals[field]
	return v, ok
}

func (r *Record) Has(field string) bool {
	_, ok := r.vals[field]
	return ok
}

// Text returns the textual form of a field value, or "" when absent.
func (r *Record) Text(field string) string {
	v, ok := r.vals[field]
	if !ok {
		return ""
	}
	return v.Text()
}

// ID is the record's unique identifier, assigned on insert.
func (r *Record) ID() string {
	return r.Text("id")
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Record) Clone() *Record {
	c := NewRecord()
	for _, f := range r.order {
		c.Set(f, r.vals[f].clone())
	}
	return c
}
