// Package taskname renders task name templates for log output.
//
// Templates use brace placeholders: "{}" takes the next positional value,
// "{0}" a positional value by index and "{name}" a keyword value. A
// placeholder may carry a conversion ("!s", "!r", "!a") and a format spec
// after a colon, e.g. "{ratio:.2f}" or "{0:>8}". Literal braces are written
// "{{" and "}}".
package taskname

import (
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
)

// Render substitutes every placeholder in template with the matching value
// from args or kwargs. Any mismatch between template and values is reported
// as a render ClassifiedError.
func Render(template string, args []any, kwargs map[string]any) (string, error) {
	r := renderer{template: template, args: args, kwargs: kwargs}
	return r.render()
}

type numbering int

const (
	numberingUnset numbering = iota
	numberingAuto
	numberingManual
)

type renderer struct {
	template string
	args     []any
	kwargs   map[string]any

	mode numbering
	next int
}

func (r *renderer) render() (string, error) {
	var out strings.Builder
	s := r.template

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				out.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return "", r.fail("expected '}' before end of string", "")
			}
			field := s[i+1 : i+1+end]
			if strings.IndexByte(field, '{') >= 0 {
				return "", r.fail("nested replacement fields are not supported", field)
			}
			text, err := r.replace(field)
			if err != nil {
				return "", err
			}
			out.WriteString(text)
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				out.WriteByte('}')
				i++
				continue
			}
			return "", r.fail("single '}' encountered in template", "")
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), nil
}

// replace renders one "name!conv:spec" field.
func (r *renderer) replace(field string) (string, error) {
	name, rest := field, ""
	if idx := strings.IndexAny(field, "!:"); idx >= 0 {
		name, rest = field[:idx], field[idx:]
	}

	var conversion byte
	if strings.HasPrefix(rest, "!") {
		if len(rest) < 2 || (len(rest) > 2 && rest[2] != ':') {
			return "", r.fail("expected ':' after conversion specifier", field)
		}
		conversion = rest[1]
		rest = rest[2:]
	}
	specText := strings.TrimPrefix(rest, ":")

	value, err := r.lookup(name, field)
	if err != nil {
		return "", err
	}

	switch conversion {
	case 0:
	case 's':
		value = fmt.Sprint(value)
	case 'r':
		value = repr(value, false)
	case 'a':
		value = repr(value, true)
	default:
		return "", r.fail(fmt.Sprintf("unknown conversion specifier %q", conversion), field)
	}

	sp, err := parseSpec(specText)
	if err != nil {
		return "", r.wrap(err, field)
	}
	text, err := formatValue(value, sp)
	if err != nil {
		return "", r.wrap(err, field)
	}
	return text, nil
}

func (r *renderer) lookup(name, field string) (any, error) {
	if strings.ContainsAny(name, ".[") {
		return nil, r.fail("attribute and index access are not supported", field)
	}

	if name == "" {
		if r.mode == numberingManual {
			return nil, r.fail("cannot switch from manual field numbering to automatic", field)
		}
		r.mode = numberingAuto
		idx := r.next
		r.next++
		return r.positional(idx, field)
	}

	if isDigits(name) {
		idx, err := strconv.Atoi(name)
		if err != nil {
			return nil, r.fail(fmt.Sprintf("replacement index %s too large", name), field)
		}
		if r.mode == numberingAuto {
			return nil, r.fail("cannot switch from automatic field numbering to manual", field)
		}
		r.mode = numberingManual
		return r.positional(idx, field)
	}

	value, ok := r.kwargs[name]
	if !ok {
		return nil, r.fail(fmt.Sprintf("missing keyword argument %q", name), field)
	}
	return value, nil
}

func (r *renderer) positional(idx int, field string) (any, error) {
	if idx >= len(r.args) {
		return nil, r.fail(fmt.Sprintf("replacement index %d out of range for %d positional arguments", idx, len(r.args)), field)
	}
	return r.args[idx], nil
}

func (r *renderer) fail(message, field string) error {
	return errors.RenderError(message).
		WithContext("template", r.template).
		WithContext("field", field).
		Build()
}

func (r *renderer) wrap(err error, field string) error {
	return errors.WrapError(err, errors.CategoryRender, "cannot format field").
		WithContext("template", r.template).
		WithContext("field", field).
		Build()
}

func repr(v any, ascii bool) string {
	if s, ok := v.(string); ok {
		if ascii {
			return strconv.QuoteToASCII(s)
		}
		return strconv.Quote(s)
	}
	text := fmt.Sprintf("%#v", v)
	if ascii {
		quoted := strconv.QuoteToASCII(text)
		return quoted[1 : len(quoted)-1]
	}
	return text
}
