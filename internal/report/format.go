package report

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers for one locale. The zero value, and any
// Formatter built from an empty locale, uses the invariant format: decimals
// as written by decimal.String, integers without grouping.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewFormatter(locale string) (Formatter, error) {
	if locale == "" {
		return Formatter{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, errors.Wrapf(err, "locale %q", locale)
	}
	return Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale is the BCP 47 tag, or "" for the invariant format.
func (f Formatter) Locale() string {
	if f.printer == nil {
		return ""
	}
	return f.tag.String()
}

var maxWhole = decimal.NewFromInt(math.MaxInt64)

// Money rounds to two digits. Localized output groups the whole part and
// prints the cents exactly; only values beyond int64 fall back to plain
// fixed-point text.
func (f Formatter) Money(d decimal.Decimal) string {
	if f.printer == nil {
		return d.String()
	}
	r := d.Round(2)
	abs := r.Abs()
	whole := abs.Truncate(0)
	if whole.GreaterThan(maxWhole) {
		return r.StringFixed(2)
	}
	cents := abs.Sub(whole).Shift(2).IntPart()
	s := f.printer.Sprintf("%v", number.Decimal(whole.IntPart())) + f.separator() +
		f.printer.Sprintf("%v", number.Decimal(cents, number.MinIntegerDigits(2), number.NoSeparator()))
	if r.IsNegative() {
		s = "-" + s
	}
	return s
}

// separator is the locale's decimal separator, taken from how it prints 1.5.
func (f Formatter) separator() string {
	runes := []rune(f.printer.Sprintf("%v", number.Decimal(1.5, number.MinFractionDigits(1))))
	if len(runes) < 3 {
		return "."
	}
	return string(runes[1 : len(runes)-1])
}

func (f Formatter) Int(v int) string {
	if f.printer == nil {
		return strconv.Itoa(v)
	}
	return f.printer.Sprintf("%v", number.Decimal(v))
}
