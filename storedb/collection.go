package storedb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/yeremiapane/restaurant-floor/utils"
)

// Collection owns the ordered record sequence of one named collection and
// its persistence round-trip. Every mutating operation is a complete
// read-modify-rewrite of the backing file executed under the collection
// lock, so concurrent callers are serialized per collection.
type Collection struct {
	name   string
	path   string
	schema Schema

	mu      sync.Mutex
	header  []string
	records []*Record
}

// OpenCollection loads the collection from dir/<name>.txt. A missing file is
// an empty collection; a malformed file degrades row by row, never fails.
func OpenCollection(dir, name string, schema Schema) (*Collection, error) {
	if schema == nil {
		schema = Schema{}
	}
	c := &Collection{
		name:   name,
		path:   filepath.Join(dir, name+".txt"),
		schema: schema,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collection) Name() string { return c.name }

// load reads the persisted form: line 1 is the pipe-delimited field header,
// each following line one record positionally aligned to it. Rows whose
// field count differs from the header are skipped; malformed field values
// degrade to their type's zero value. Both are logged, neither aborts.
func (c *Collection) load() error {
	c.header = nil
	c.records = nil

	f, err := os.Open(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return scanner.Err()
	}
	c.header = strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), Delimiter)

	line := 1
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r\n")
		if raw == "" {
			continue
		}
		values := strings.Split(raw, Delimiter)
		if len(values) != len(c.header) {
			utils.ErrorLogger.Warnf("collection %s: skipping row %d: %d fields, header has %d",
				c.name, line, len(values), len(c.header))
			continue
		}
		rec := NewRecord()
		for i, field := range c.header {
			v, err := decodeField(c.schema, field, values[i])
			if err != nil {
				utils.ErrorLogger.Warnf("collection %s row %d: %v, using zero value", c.name, line, err)
			}
			rec.Set(field, v)
		}
		c.records = append(c.records, rec)
	}
	return scanner.Err()
}

// save rewrites the whole backing file from the in-memory sequence. An empty
// collection performs no write: an existing file is never truncated by an
// empty-state save, so a collection's header survives being transiently
// empty. The flip side is that deleting the last record does not persist.
func (c *Collection) save() error {
	if len(c.records) == 0 {
		return nil
	}

	c.widenHeader()

	f, err := os.Create(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, strings.Join(c.header, Delimiter))
	for _, rec := range c.records {
		values := make([]string, len(c.header))
		for i, field := range c.header {
			values[i] = rec.Text(field)
		}
		fmt.Fprintln(w, strings.Join(values, Delimiter))
	}
	return w.Flush()
}

// widenHeader extends the header with any field a record carries beyond it,
// in first-seen order. Prior rows backfill the new columns with "" on write,
// so records of differing shape (single vs consolidated receipts) coexist
// without losing fields on the round-trip.
func (c *Collection) widenHeader() {
	seen := make(map[string]bool, len(c.header))
	for _, f := range c.header {
		seen[f] = true
	}
	for _, rec := range c.records {
		for _, f := range rec.Fields() {
			if !seen[f] {
				seen[f] = true
				c.header = append(c.header, f)
			}
		}
	}
}

// checkWritable rejects values that would corrupt the persisted form.
func (c *Collection) checkWritable(rec *Record) error {
	for _, field := range rec.Fields() {
		if strings.Contains(field, Delimiter) || strings.ContainsAny(field, "\r\n") {
			return fmt.Errorf("collection %s: field name %q contains reserved characters", c.name, field)
		}
		text := rec.Text(field)
		if strings.Contains(text, Delimiter) || strings.ContainsAny(text, "\r\n") {
			return fmt.Errorf("collection %s: value of %q contains reserved characters", c.name, field)
		}
	}
	return nil
}

// Find returns the records matching every given predicate, in insertion
// order; with no predicate it returns all records. The slice is fresh but
// shares record pointers with the store: mutate through UpdateOne/UpdateMany
// only.
func (c *Collection) Find(preds ...Predicate) []*Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(preds...)
}

func (c *Collection) findLocked(preds ...Predicate) []*Record {
	out := make([]*Record, 0, len(c.records))
	for _, rec := range c.records {
		if matchesAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec *Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(rec) {
			return false
		}
	}
	return true
}

// FindOne returns the first match in insertion order.
func (c *Collection) FindOne(pred Predicate) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := c.findOneLocked(pred)
	return rec, rec != nil
}

func (c *Collection) findOneLocked(pred Predicate) *Record {
	for _, rec := range c.records {
		if pred.Matches(rec) {
			return rec
		}
	}
	return nil
}

// InsertOne appends the record, assigning the next id when it carries none:
// the smallest integer strictly greater than the current maximum, so ids are
// never reused after a delete. Persists before returning.
func (c *Collection) InsertOne(rec *Record) (*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(rec); err != nil {
		return nil, err
	}
	if !rec.Has("id") {
		rec.Set("id", String(strconv.Itoa(c.maxIDLocked()+1)))
	}
	c.records = append(c.records, rec)
	if err := c.save(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Collection) maxIDLocked() int {
	max := 0
	for _, rec := range c.records {
		if n, err := strconv.Atoi(rec.Text("id")); err == nil && n > max {
			max = n
		}
	}
	return max
}

// UpdateOne applies each field of set to the first match and persists.
// A nil result means nothing matched; that is a no-op, not an error.
func (c *Collection) UpdateOne(pred Predicate, set *Record) (*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(set); err != nil {
		return nil, err
	}
	rec := c.findOneLocked(pred)
	if rec == nil {
		return nil, nil
	}
	applySet(rec, set)
	if err := c.save(); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateMany applies set to every match and persists once afterwards.
func (c *Collection) UpdateMany(pred Predicate, set *Record) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(set); err != nil {
		return 0, err
	}
	matched := c.findLocked(pred)
	for _, rec := range matched {
		applySet(rec, set)
	}
	if len(matched) == 0 {
		return 0, nil
	}
	return len(matched), c.save()
}

func applySet(rec, set *Record) {
	for _, field := range set.Fields() {
		v, _ := set.Get(field)
		rec.Set(field, v)
	}
}

// DeleteOne removes the first match and persists. Nil means nothing matched
// and nothing was written.
func (c *Collection) DeleteOne(pred Predicate) (*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, rec := range c.records {
		if pred.Matches(rec) {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return rec, c.save()
		}
	}
	return nil, nil
}

// DeleteMany removes every match, persisting once when anything was removed.
func (c *Collection) DeleteMany(pred Predicate) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0]
	removed := 0
	for _, rec := range c.records {
		if pred.Matches(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, c.save()
}

// Aggregate runs the pipeline over a snapshot of the current records.
func (c *Collection) Aggregate(p Pipeline) []*Record {
	c.mu.Lock()
	snapshot := make([]*Record, len(c.records))
	copy(snapshot, c.records)
	c.mu.Unlock()

	for _, stage := range p {
		snapshot = stage.apply(snapshot)
	}
	return snapshot
}
