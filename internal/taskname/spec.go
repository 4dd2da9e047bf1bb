package taskname

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// spec is a parsed "[[fill]align][sign][#][0][width][grouping][.precision][type]".
type spec struct {
	fill      rune
	align     byte
	sign      byte
	alternate bool
	zero      bool
	width     int
	grouping  byte
	precision int
	verb      byte
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '=' || c == '^'
}

func parseSpec(s string) (spec, error) {
	sp := spec{fill: ' ', precision: -1}
	if s == "" {
		return sp, nil
	}

	i := 0
	if r, size := utf8.DecodeRuneInString(s); size < len(s) && isAlign(s[size]) {
		sp.fill, sp.align = r, s[size]
		i = size + 1
	} else if isAlign(s[0]) {
		sp.align = s[0]
		i = 1
	}

	if i < len(s) && (s[i] == '+' || s[i] == '-' || s[i] == ' ') {
		sp.sign = s[i]
		i++
	}
	if i < len(s) && s[i] == '#' {
		sp.alternate = true
		i++
	}
	if i < len(s) && s[i] == '0' {
		sp.zero = true
		i++
	}

	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > start {
		sp.width, _ = strconv.Atoi(s[start:i])
	}

	if i < len(s) && (s[i] == ',' || s[i] == '_') {
		sp.grouping = s[i]
		i++
	}

	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return sp, fmt.Errorf("format specifier missing precision")
		}
		sp.precision, _ = strconv.Atoi(s[start:i])
	}

	switch rest := s[i:]; len(rest) {
	case 0:
	case 1:
		sp.verb = rest[0]
	default:
		return sp, fmt.Errorf("invalid format specifier %q", s)
	}

	if sp.zero && sp.align == 0 {
		if sp.fill == ' ' {
			sp.fill = '0'
		}
		sp.align = '='
	}
	return sp, nil
}

type kind int

const (
	kindOther kind = iota
	kindString
	kindInt
	kindFloat
)

func classify(v any) (kind, reflect.Value) {
	if v == nil {
		return kindOther, reflect.Value{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return kindString, rv
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindInt, rv
	case reflect.Float32, reflect.Float64:
		return kindFloat, rv
	default:
		return kindOther, rv
	}
}

func formatValue(v any, sp spec) (string, error) {
	k, rv := classify(v)

	switch k {
	case kindInt:
		switch sp.verb {
		case 0, 'd', 'n', 'b', 'o', 'x', 'X', 'c':
			return formatInt(rv, sp)
		case 'e', 'E', 'f', 'F', 'g', 'G', '%':
			return formatFloat(intAsFloat(rv), sp)
		}
		return "", fmt.Errorf("unknown format code %q for integer value", sp.verb)
	case kindFloat:
		switch sp.verb {
		case 0, 'e', 'E', 'f', 'F', 'g', 'G', 'n', '%':
			return formatFloat(rv.Float(), sp)
		}
		return "", fmt.Errorf("unknown format code %q for float value", sp.verb)
	case kindString:
		if sp.verb != 0 && sp.verb != 's' {
			return "", fmt.Errorf("unknown format code %q for string value", sp.verb)
		}
		return formatString(rv.String(), sp)
	default:
		if sp.verb != 0 && sp.verb != 's' {
			return "", fmt.Errorf("unknown format code %q for %T value", sp.verb, v)
		}
		return formatString(fmt.Sprint(v), sp)
	}
}

func intAsFloat(rv reflect.Value) float64 {
	if rv.CanInt() {
		return float64(rv.Int())
	}
	return float64(rv.Uint())
}

func formatString(s string, sp spec) (string, error) {
	if sp.sign != 0 {
		return "", fmt.Errorf("sign not allowed in string format specifier")
	}
	if sp.alternate {
		return "", fmt.Errorf("alternate form (#) not allowed in string format specifier")
	}
	if sp.grouping != 0 {
		return "", fmt.Errorf("cannot specify %q with 's'", sp.grouping)
	}
	if sp.align == '=' {
		if sp.zero && sp.fill == '0' {
			sp.align = '<'
		} else {
			return "", fmt.Errorf("'=' alignment not allowed in string format specifier")
		}
	}
	if sp.precision >= 0 && utf8.RuneCountInString(s) > sp.precision {
		s = string([]rune(s)[:sp.precision])
	}
	if sp.align == 0 {
		sp.align = '<'
	}
	return pad("", s, sp), nil
}

func formatInt(rv reflect.Value, sp spec) (string, error) {
	if sp.precision >= 0 {
		return "", fmt.Errorf("precision not allowed in integer format specifier")
	}

	negative := false
	var magnitude uint64
	if rv.CanInt() {
		n := rv.Int()
		negative = n < 0
		magnitude = uint64(n)
		if negative {
			magnitude = -magnitude
		}
	} else {
		magnitude = rv.Uint()
	}

	var body, prefix string
	groupSize := 3
	switch sp.verb {
	case 0, 'd', 'n':
		body = strconv.FormatUint(magnitude, 10)
	case 'b':
		body, prefix, groupSize = strconv.FormatUint(magnitude, 2), "0b", 4
	case 'o':
		body, prefix, groupSize = strconv.FormatUint(magnitude, 8), "0o", 4
	case 'x':
		body, prefix, groupSize = strconv.FormatUint(magnitude, 16), "0x", 4
	case 'X':
		body, prefix, groupSize = strings.ToUpper(strconv.FormatUint(magnitude, 16)), "0X", 4
	case 'c':
		if sp.sign != 0 {
			return "", fmt.Errorf("sign not allowed with integer format specifier 'c'")
		}
		if negative || magnitude > utf8.MaxRune {
			return "", fmt.Errorf("%%c arg not in range(0x110000)")
		}
		sp.align = defaultAlign(sp.align, '<')
		return pad("", string(rune(magnitude)), sp), nil
	}

	if sp.grouping != 0 {
		if sp.grouping == ',' && groupSize == 4 {
			return "", fmt.Errorf("cannot specify ',' with %q", sp.verb)
		}
		body = group(body, sp.grouping, groupSize)
	}
	if !sp.alternate {
		prefix = ""
	}

	sp.align = defaultAlign(sp.align, '>')
	return pad(signOf(negative, sp.sign)+prefix, body, sp), nil
}

func formatFloat(f float64, sp spec) (string, error) {
	if sp.alternate {
		return "", fmt.Errorf("alternate form (#) not supported for float values")
	}
	if sp.verb == 'n' && sp.grouping != 0 {
		return "", fmt.Errorf("cannot specify %q with 'n'", sp.grouping)
	}

	negative := math.Signbit(f) && !math.IsNaN(f)
	f = math.Abs(f)

	var body string
	switch {
	case math.IsInf(f, 0):
		body = "inf"
	case math.IsNaN(f):
		body = "nan"
	default:
		body = floatBody(f, sp)
	}
	if sp.verb == 'F' || sp.verb == 'E' || sp.verb == 'G' {
		body = strings.ToUpper(body)
	}

	if sp.grouping != 0 {
		intPart, frac := body, ""
		if idx := strings.IndexAny(body, ".e%"); idx >= 0 {
			intPart, frac = body[:idx], body[idx:]
		}
		if isDigits(intPart) {
			body = group(intPart, sp.grouping, 3) + frac
		}
	}

	sp.align = defaultAlign(sp.align, '>')
	return pad(signOf(negative, sp.sign), body, sp), nil
}

func floatBody(f float64, sp spec) string {
	precision := sp.precision
	switch sp.verb {
	case 'f', 'F':
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(f, 'f', precision, 64)
	case 'e', 'E':
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(f, 'e', precision, 64)
	case 'g', 'G', 'n':
		if precision < 0 {
			precision = 6
		}
		if precision == 0 {
			precision = 1
		}
		return strconv.FormatFloat(f, 'g', precision, 64)
	case '%':
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(f*100, 'f', precision, 64) + "%"
	default:
		var text string
		if precision >= 0 {
			if precision == 0 {
				precision = 1
			}
			text = strconv.FormatFloat(f, 'g', precision, 64)
		} else {
			text = shortestFloat(f)
		}
		if !strings.ContainsAny(text, ".e") {
			text += ".0"
		}
		return text
	}
}

// shortestFloat writes the shortest round-tripping digits of f in fixed
// notation for decimal exponents in [-4, 16) and in exponent notation
// outside it.
func shortestFloat(f float64) string {
	text := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(text[strings.IndexByte(text, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return text
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func defaultAlign(align, fallback byte) byte {
	if align == 0 {
		return fallback
	}
	return align
}

func signOf(negative bool, option byte) string {
	switch {
	case negative:
		return "-"
	case option == '+':
		return "+"
	case option == ' ':
		return " "
	default:
		return ""
	}
}

// pad lays out prefix (sign and radix marker) and body within sp.width.
func pad(prefix, body string, sp spec) string {
	length := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(body)
	if sp.width <= length {
		return prefix + body
	}
	fill := strings.Repeat(string(sp.fill), sp.width-length)

	switch sp.align {
	case '<':
		return prefix + body + fill
	case '^':
		left := (sp.width - length) / 2
		return strings.Repeat(string(sp.fill), left) + prefix + body +
			strings.Repeat(string(sp.fill), sp.width-length-left)
	case '=':
		return prefix + fill + body
	default:
		return fill + prefix + body
	}
}

func group(digits string, sep byte, size int) string {
	if len(digits) <= size {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % size
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += size {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
