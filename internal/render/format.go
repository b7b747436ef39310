package render

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatTick labels a legend tick as a percentage rounded to precision
// decimal places, e.g. 2.6 -> "2.6%". Rounding is to the nearest
// representable decimal of the float64 value.
func FormatTick(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return printer.Sprintf("%."+strconv.Itoa(precision)+"f%%", v)
}
