package natives

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/cwbudde/jsi/internal/gcheap"
)

func registerJSON(global *gcheap.JSEnv, heap *gcheap.Heap) {
	j := heap.NewObject()

	j.Set("stringify", native("JSON.stringify", func(args []gcheap.Value) (gcheap.Value, error) {
		value := arg(args, 0)
		replacer := arg(args, 1)
		space := arg(args, 2)

		switch replacer.(type) {
		case gcheap.Null, gcheap.Undefined, nil:
		default:
			return nil, errors.New("JSON.stringify replacer functions/arrays are not supported")
		}

		indent := indentFor(space)

		s, ok := stringifyValue(value, indent, "")
		if !ok {
			return gcheap.Undefined{}, nil
		}
		return heap.NewString(s), nil
	}))

	j.Set("parse", native("JSON.parse", func(args []gcheap.Value) (gcheap.Value, error) {
		text := toDisplayString(arg(args, 0))
		p := &jsonParser{src: text, heap: heap}
		p.skipWS()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.pos != len(p.src) {
			return nil, fmt.Errorf("Unexpected non-whitespace character after JSON at position %d", p.pos)
		}
		return v, nil
	}))

	global.Define("JSON", j, false)
}

func indentFor(space gcheap.Value) string {
	switch s := space.(type) {
	case gcheap.Number:
		n := int(s)
		if n < 0 {
			n = 0
		}
		if n > 10 {
			n = 10
		}
		return strings.Repeat(" ", n)
	case *gcheap.JSString:
		if len(s.Value) > 10 {
			return s.Value[:10]
		}
		return s.Value
	default:
		return ""
	}
}

// stringifyValue implements JSON.stringify's core algorithm. Undefined
// emits the bare word undefined and functions emit the literal
// (unquoted) markers [Function] / [Native Function], deliberate
// extensions beyond strict JSON. ok is false only for a value of an
// unrecognised type, which is omitted from objects, written as null in
// arrays, and makes a top-level call return undefined.
func stringifyValue(v gcheap.Value, indent, curIndent string) (string, bool) {
	switch x := v.(type) {
	case nil, gcheap.Undefined:
		return "undefined", true
	case gcheap.Null:
		return "null", true
	case gcheap.Boolean:
		if x {
			return "true", true
		}
		return "false", true
	case gcheap.Number:
		return formatNumber(float64(x)), true
	case *gcheap.JSString:
		return quoteJSON(x.Value), true
	case *gcheap.JSFunction:
		return "[Function]", true
	case *gcheap.NativeFunction:
		return "[Native Function]", true
	case *gcheap.JSArray:
		return stringifyArray(x, indent, curIndent), true
	case *gcheap.JSObject:
		return stringifyObject(x, indent, curIndent), true
	default:
		return "", false
	}
}

func stringifyArray(a *gcheap.JSArray, indent, curIndent string) string {
	if len(a.Elements) == 0 {
		return "[]"
	}
	nextIndent := curIndent + indent
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		s, ok := stringifyValue(el, indent, nextIndent)
		if !ok {
			s = "null"
		}
		parts[i] = s
	}
	if indent == "" {
		return "[" + strings.Join(parts, ",") + "]"
	}
	sep := ",\n" + nextIndent
	return "[\n" + nextIndent + strings.Join(parts, sep) + "\n" + curIndent + "]"
}

func stringifyObject(o *gcheap.JSObject, indent, curIndent string) string {
	nextIndent := curIndent + indent
	var parts []string
	for _, k := range o.Keys {
		v := o.Values[k]
		s, ok := stringifyValue(v, indent, nextIndent)
		if !ok {
			continue
		}
		if indent == "" {
			parts = append(parts, quoteJSON(k)+":"+s)
		} else {
			parts = append(parts, quoteJSON(k)+": "+s)
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	if indent == "" {
		return "{" + strings.Join(parts, ",") + "}"
	}
	sep := ",\n" + nextIndent
	return "{\n" + nextIndent + strings.Join(parts, sep) + "\n" + curIndent + "}"
}

// quoteJSON renders s as a JSON string literal: '"', '\\' and control
// characters below 0x20 are escaped, with the named shorthand escapes
// JSON defines (\b \f \n \r \t) preferred over \u00XX.
func quoteJSON(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// jsonParser is a small recursive-descent JSON reader backing
// JSON.parse, producing gcheap values directly (no intermediate
// generic-interface tree).
type jsonParser struct {
	src  string
	pos  int
	heap *gcheap.Heap
}

func (p *jsonParser) skipWS() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *jsonParser) parseValue() (gcheap.Value, error) {
	p.skipWS()
	if p.pos >= len(p.src) {
		return nil, errors.New("Unexpected end of JSON input")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return p.heap.NewString(s), nil
	case c == 't':
		return p.parseLiteral("true", gcheap.Bool(true))
	case c == 'f':
		return p.parseLiteral("false", gcheap.Bool(false))
	case c == 'n':
		return p.parseLiteral("null", gcheap.Null{})
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, fmt.Errorf("Unexpected token %c in JSON at position %d", c, p.pos)
	}
}

func (p *jsonParser) parseLiteral(lit string, v gcheap.Value) (gcheap.Value, error) {
	if p.pos+len(lit) > len(p.src) || p.src[p.pos:p.pos+len(lit)] != lit {
		return nil, fmt.Errorf("Unexpected token in JSON at position %d", p.pos)
	}
	p.pos += len(lit)
	return v, nil
}

func (p *jsonParser) parseNumber() (gcheap.Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number in JSON at position %d", start)
	}
	return gcheap.Number(f), nil
}

func (p *jsonParser) parseString() (string, error) {
	if p.peek() != '"' {
		return "", fmt.Errorf("expected string at position %d", p.pos)
	}
	p.pos++
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", errors.New("Unterminated string in JSON")
		}
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return sb.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.src) {
				return "", errors.New("Unterminated escape in JSON string")
			}
			switch p.src[p.pos] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				r, err := p.readUnicodeEscape()
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
				continue
			default:
				return "", fmt.Errorf("invalid escape in JSON string at position %d", p.pos)
			}
			p.pos++
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}
}

func (p *jsonParser) readUnicodeEscape() (rune, error) {
	p.pos++ // consume 'u'
	if p.pos+4 > len(p.src) {
		return 0, errors.New("invalid unicode escape in JSON string")
	}
	hi, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
	if err != nil {
		return 0, errors.New("invalid unicode escape in JSON string")
	}
	p.pos += 4
	r := rune(hi)
	if utf16.IsSurrogate(r) {
		if p.pos+6 <= len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
			lo, err := strconv.ParseUint(p.src[p.pos+2:p.pos+6], 16, 32)
			if err == nil {
				combined := utf16.DecodeRune(r, rune(lo))
				if combined != 0xFFFD {
					p.pos += 6
					return combined, nil
				}
			}
		}
	}
	return r, nil
}

func (p *jsonParser) parseArray() (gcheap.Value, error) {
	p.pos++ // '['
	var elems []gcheap.Value
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return p.heap.NewArray(elems), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		p.skipWS()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipWS()
		case ']':
			p.pos++
			return p.heap.NewArray(elems), nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' at position %d", p.pos)
		}
	}
}

func (p *jsonParser) parseObject() (gcheap.Value, error) {
	p.pos++ // '{'
	obj := p.heap.NewObject()
	p.skipWS()
	if p.peek() == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipWS()
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipWS()
		if p.peek() != ':' {
			return nil, fmt.Errorf("expected ':' at position %d", p.pos)
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
		p.skipWS()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, fmt.Errorf("expected ',' or '}' at position %d", p.pos)
		}
	}
}
