package storedb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Delimiter separating columns in the persisted form. Values containing it
// would corrupt their row on reload, so mutations carrying it are rejected
// up front (see Collection.checkWritable).
const Delimiter = "|"

// FieldType tells the codec how to parse a persisted column back into a
// typed value. Columns without a declared type load as strings.
type FieldType int

const (
	FieldString FieldType = iota
	FieldBool
	FieldNumber
	FieldList
)

// Schema maps field names to their column types for one collection.
type Schema map[string]FieldType

// decodeField parses one raw column according to the schema. Parsing is
// lenient: a malformed value degrades to the type's zero value and the error
// is reported to the caller for logging instead of aborting the load.
func decodeField(schema Schema, field, raw string) (Value, error) {
	switch schema[field] {
	case FieldBool:
		return Bool(raw == "true"), nil
	case FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Number(0), fmt.Errorf("field %s: bad number %q", field, raw)
		}
		return Number(n), nil
	case FieldList:
		items, err := parseList(raw)
		if err != nil {
			return List(nil), fmt.Errorf("field %s: bad list literal: %w", field, err)
		}
		return List(items), nil
	default:
		return String(raw), nil
	}
}

// encodeList writes dish-line sub-records as a JSON array literal. Sub-record
// field order is preserved so the literal reproduces the in-memory structure
// exactly and parses back losslessly.
func encodeList(items []*Record) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('{')
		for j, f := range it.Fields() {
			if j > 0 {
				sb.WriteByte(',')
			}
			key, _ := json.Marshal(f)
			sb.Write(key)
			sb.WriteByte(':')
			v, _ := it.Get(f)
			switch v.Kind() {
			case KindNumber:
				sb.WriteString(strconv.FormatFloat(v.Num(), 'g', -1, 64))
			case KindBool:
				sb.WriteString(strconv.FormatBool(v.IsTrue()))
			default:
				s, _ := json.Marshal(v.Text())
				sb.Write(s)
			}
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}

// parseList reads a list literal back into sub-records, preserving key order
// by walking the token stream instead of decoding into a map.
func parseList(text string) ([]*Record, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected array, got %v", tok)
	}

	var items []*Record
	for dec.More() {
		item, err := parseListItem(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

func parseListItem(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := valTok.(type) {
		case string:
			rec.Set(key, String(v))
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return nil, err
			}
			rec.Set(key, Number(n))
		case bool:
			rec.Set(key, Bool(v))
		default:
			return nil, fmt.Errorf("field %s: unsupported value %v", key, valTok)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}
