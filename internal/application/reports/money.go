package reports

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var penPrinter = message.NewPrinter(language.MustParse("es-PE"))

// FormatPEN formatea un monto en soles con la convención es-PE, para los
// exportes legibles (CSV de resumen y PDF). El JSON siempre lleva el número crudo.
func FormatPEN(d decimal.Decimal) string {
	v, _ := d.Float64()
	return penPrinter.Sprint(currency.Symbol(currency.MustParseISO("PEN").Amount(v)))
}
