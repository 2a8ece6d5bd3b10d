// Package skucodec encodes, validates and parses canonical product codes.
//
// Canonical grammar:
//
//	<PREFIX>.<model:3 digits>-<size:1-2 digits>.<fabric:alphanumeric>.<color:2 digits>
//
// e.g. PREFIX.001-16.VelutaLux.07. Encoding is strict: two differently
// spelled inputs that normalise to the same code produce the same string.
package skucodec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// DefaultPrefix is the product family tag used when none is configured.
const DefaultPrefix = "PREFIX"

// Codec is bound to one product family prefix. It is immutable and safe for
// concurrent use.
type Codec struct {
	prefix string
	re     *regexp.Regexp
}

// New returns a Codec for prefix. An empty prefix selects DefaultPrefix.
func New(prefix string) *Codec {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Codec{
		prefix: prefix,
		re:     regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\.(\d{3})-(\d{1,2})\.([A-Za-z0-9]+)\.(\d{2})$`),
	}
}

// Prefix returns the family tag.
func (c *Codec) Prefix() string {
	return c.prefix
}

// Encode builds the canonical code. It returns false when any field is empty
// (a non-positive width counts as empty) or normalises to empty.
//
// The result is not checked against the grammar: a non-numeric model passes
// through unchanged and yields a code Validate rejects.
func (c *Codec) Encode(model string, widthCm int, fabric, color string) (string, bool) {
	model = strings.TrimSpace(model)
	fabric = strings.TrimSpace(fabric)
	color = strings.TrimSpace(color)
	if model == "" || widthCm <= 0 || fabric == "" || color == "" {
		return "", false
	}

	parts := [4]string{
		normalizeModel(model),
		sizeSegment(widthCm),
		fabric,
		normalizeColor(color),
	}
	for _, p := range parts {
		if p == "" {
			return "", false
		}
	}
	return fmt.Sprintf("%s.%s-%s.%s.%s", c.prefix, parts[0], parts[1], parts[2], parts[3]), true
}

// Validate reports whether code matches the grammar exactly.
func (c *Codec) Validate(code string) bool {
	return c.re.MatchString(code)
}

// Parse extracts the structural parts of a canonical code.
func (c *Codec) Parse(code string) (domain.SkuParts, bool) {
	m := c.re.FindStringSubmatch(code)
	if m == nil {
		return domain.SkuParts{}, false
	}
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.SkuParts{}, false
	}
	color, err := strconv.Atoi(m[4])
	if err != nil {
		return domain.SkuParts{}, false
	}
	return domain.SkuParts{
		Group:       m[1],
		SizeNumber:  size,
		Model:       m[3],
		ColorNumber: color,
	}, true
}

func normalizeModel(model string) string {
	if !isDigits(model) {
		return model
	}
	return leftPad(model, 3)
}

// sizeSegment renders the width: whole decimeters from 100 cm up, raw
// centimeters otherwise.
func sizeSegment(widthCm int) string {
	if widthCm >= 100 && widthCm%10 == 0 {
		return strconv.Itoa(widthCm / 10)
	}
	return strconv.Itoa(widthCm)
}

// normalizeColor pads to two characters and keeps the rightmost two when
// longer.
func normalizeColor(color string) string {
	color = leftPad(color, 2)
	return color[len(color)-2:]
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
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
