package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MarshalJSON encodes v as compact JSON, keeping object member order.
// HTML characters are not escaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := newJSONWriter(&buf).write(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON into v, keeping object member order and
// number literals.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := decodeJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// EncodeJSON encodes v as JSON. A non-empty indent produces one member per
// line, indented by that string per level.
func EncodeJSON(v Value, indent string) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return compact, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return nil, fmt.Errorf("document: indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

// jsonWriter writes a Value tree to a buffer. Strings go through a shared
// json.Encoder so escaping matches encoding/json, minus HTML escaping.
type jsonWriter struct {
	buf *bytes.Buffer
	str *json.Encoder
}

func newJSONWriter(buf *bytes.Buffer) *jsonWriter {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &jsonWriter{buf: buf, str: enc}
}

func (w *jsonWriter) write(v Value) error {
	switch v.kind {
	case KindNull:
		w.buf.WriteString("null")
	case KindBool:
		if v.b {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case KindNumber:
		if !isNumberLiteral(v.text) {
			return fmt.Errorf("document: invalid number literal %q", v.text)
		}
		w.buf.WriteString(v.text)
	case KindString:
		return w.writeString(v.text)
	case KindArray:
		w.buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(item); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case KindObject:
		w.buf.WriteByte('{')
		first := true
		for key, val := range v.obj.All() {
			if !first {
				w.buf.WriteByte(',')
			}
			first = false
			if err := w.writeString(key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if err := w.write(val); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
	default:
		return fmt.Errorf("document: unknown value kind %d", v.kind)
	}
	return nil
}

func (w *jsonWriter) writeString(s string) error {
	if err := w.str.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	w.buf.Truncate(w.buf.Len() - 1)
	return nil
}

// isNumberLiteral reports whether s is a valid JSON number.
func isNumberLiteral(s string) bool {
	_, err := json.Marshal(json.Number(s))
	return err == nil && s != ""
}

// decodeJSON parses data in two passes: encoding/json checks the syntax and
// supplies its standard error text, then a token stream builds the ordered tree.
func decodeJSON(data []byte) (Value, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return decodeToken(dec)
}

func decodeToken(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("document: object key is %T, not string", keyTok)
				}
				val, err := decodeToken(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return FromObject(obj), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeToken(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		}
	}
	return Value{}, fmt.Errorf("document: unexpected JSON token %v", tok)
}

// jsonErrorPosition converts the byte offset of a syntax error into a
// 1-based line and column.
func jsonErrorPosition(data []byte, err error) (line, column int) {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return positionOf(data, int64(len(data)))
		}
		return 0, 0
	}
	return positionOf(data, syntaxErr.Offset)
}

func positionOf(data []byte, offset int64) (line, column int) {
	// offset points just past the offending byte
	idx := min(max(offset-1, 0), int64(len(data)))
	line, column = 1, 1
	for _, c := range data[:idx] {
		if c == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
