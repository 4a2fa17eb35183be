package resource

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// jsonWalker re-encodes a document from its token stream, which keeps
// object keys in their original order.
type jsonWalker struct{}

func (jsonWalker) Format() Format { return JSON }

func (jsonWalker) Walk(r io.Reader, w io.Writer, fn Func) (int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	j := &jsonWriter{dec: dec, out: bufio.NewWriter(w), fn: fn}
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return 0, invalid(JSON, errors.New("empty document"))
	}
	if err != nil {
		return 0, invalid(JSON, err)
	}
	if err := j.value(tok, "", 0); err != nil {
		return j.n, invalid(JSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return j.n, invalid(JSON, err)
	}
	j.out.WriteByte('\n')
	return j.n, j.out.Flush()
}

type jsonWriter struct {
	dec *json.Decoder
	out *bufio.Writer
	fn  Func
	n   int
}

func (j *jsonWriter) value(tok json.Token, path string, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return j.object(path, depth)
		case '[':
			return j.array(path, depth)
		}
		return fmt.Errorf("unexpected %q", rune(v))
	case string:
		j.n++
		return j.str(j.fn(Entry{Name: path, Value: v}))
	case json.Number:
		j.out.WriteString(v.String())
	case bool:
		j.out.WriteString(strconv.FormatBool(v))
	case nil:
		j.out.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func (j *jsonWriter) object(path string, depth int) error {
	j.out.WriteByte('{')
	empty := true
	for j.dec.More() {
		tok, err := j.dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if !empty {
			j.out.WriteByte(',')
		}
		empty = false
		j.newline(depth + 1)
		if err := j.str(key); err != nil {
			return err
		}
		j.out.WriteString(": ")

		tok, err = j.dec.Token()
		if err != nil {
			return err
		}
		if err := j.value(tok, joinKey(path, key), depth+1); err != nil {
			return err
		}
	}
	if _, err := j.dec.Token(); err != nil {
		return err
	}
	if !empty {
		j.newline(depth)
	}
	j.out.WriteByte('}')
	return nil
}

func (j *jsonWriter) array(path string, depth int) error {
	j.out.WriteByte('[')
	i := 0
	for j.dec.More() {
		tok, err := j.dec.Token()
		if err != nil {
			return err
		}
		if i > 0 {
			j.out.WriteByte(',')
		}
		j.newline(depth + 1)
		if err := j.value(tok, fmt.Sprintf("%s[%d]", path, i), depth+1); err != nil {
			return err
		}
		i++
	}
	if _, err := j.dec.Token(); err != nil {
		return err
	}
	if i > 0 {
		j.newline(depth)
	}
	j.out.WriteByte(']')
	return nil
}

// str writes s as a JSON string without HTML escaping.
func (j *jsonWriter) str(s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	j.out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return nil
}

func (j *jsonWriter) newline(depth int) {
	j.out.WriteByte('\n')
	j.out.WriteString(strings.Repeat("  ", depth))
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
