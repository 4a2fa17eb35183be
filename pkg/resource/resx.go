package resource

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// resxWalker streams raw XML tokens so namespace prefixes, comments and
// processing instructions come out exactly as they went in. encoding/xml's
// Encoder would rewrite prefixed names like xsd:schema.
type resxWalker struct{}

var (
	// A literal \r in text would be read back as \n, and literal \n and \t
	// in attributes as spaces.
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

type resxFrame struct {
	name      xml.Name
	entry     string // resource name, set on string <data> elements
	localize  bool
	seenValue bool
}

func (resxWalker) Format() Format { return ResX }

func (resxWalker) Walk(r io.Reader, w io.Writer, fn Func) (int, error) {
	dec := xml.NewDecoder(r)
	out := bufio.NewWriter(w)

	var (
		stack      []resxFrame
		open       bool // start tag written without its closing '>'
		collecting bool
		text       strings.Builder
		sawRoot    bool
		n          int
	)
	closeOpen := func() {
		if open {
			out.WriteByte('>')
			open = false
		}
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, invalid(ResX, err)
		}

		if collecting {
			switch t := tok.(type) {
			case xml.CharData:
				text.Write(t)
				continue
			case xml.EndElement:
				if t.Name == stack[len(stack)-1].name {
					entry := stack[len(stack)-2].entry
					out.WriteString(textEscaper.Replace(fn(Entry{Name: entry, Value: text.String()})))
					n++
					collecting = false
				}
			default:
				// Markup inside a value: not a plain string, copy it through.
				out.WriteString(textEscaper.Replace(text.String()))
				collecting = false
			}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			closeOpen()
			sawRoot = true
			writeStart(out, t)
			open = true

			frame := resxFrame{name: t.Name}
			if isLocalizableData(t) {
				frame.entry, _ = attr(t, "name")
				frame.localize = true
			}
			if t.Name.Space == "" && t.Name.Local == "value" && len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if parent.localize && !parent.seenValue {
					parent.seenValue = true
					closeOpen()
					collecting = true
					text.Reset()
				}
			}
			stack = append(stack, frame)

		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].name != t.Name {
				return n, invalid(ResX, fmt.Errorf("unexpected end element </%s>", qname(t.Name)))
			}
			stack = stack[:len(stack)-1]
			if open {
				out.WriteString("/>")
				open = false
			} else {
				out.WriteString("</" + qname(t.Name) + ">")
			}

		case xml.CharData:
			closeOpen()
			out.WriteString(textEscaper.Replace(string(t)))

		case xml.Comment:
			closeOpen()
			out.WriteString("<!--" + string(t) + "-->")

		case xml.ProcInst:
			closeOpen()
			// The decoder drops the whitespace between target and instruction.
			out.WriteString("<?" + t.Target)
			if len(t.Inst) > 0 {
				out.WriteString(" " + string(t.Inst))
			}
			out.WriteString("?>")

		case xml.Directive:
			closeOpen()
			out.WriteString("<!" + string(t) + ">")
		}
	}

	if !sawRoot {
		return n, invalid(ResX, errors.New("no root element"))
	}
	if len(stack) > 0 {
		return n, invalid(ResX, fmt.Errorf("unexpected end of document: unclosed <%s>", qname(stack[len(stack)-1].name)))
	}
	return n, out.Flush()
}

// isLocalizableData reports whether a start element is a <data> entry that
// holds a plain string.
func isLocalizableData(t xml.StartElement) bool {
	if t.Name.Space != "" || t.Name.Local != "data" {
		return false
	}
	name, ok := attr(t, "name")
	if !ok || strings.HasPrefix(name, ">>") {
		return false
	}
	_, typed := attr(t, "type")
	_, mime := attr(t, "mimetype")
	return !typed && !mime
}

func attr(t xml.StartElement, local string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func writeStart(out *bufio.Writer, t xml.StartElement) {
	out.WriteString("<" + qname(t.Name))
	for _, a := range t.Attr {
		out.WriteString(" " + qname(a.Name) + `="` + attrEscaper.Replace(a.Value) + `"`)
	}
}

// qname renders a raw name; RawToken leaves the prefix in Space.
func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
