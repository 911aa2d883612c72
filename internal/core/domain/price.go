package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL форматирует цену в реалах по правилам pt-BR, например "R$ 350.000,00".
func FormatBRL(amount float64) string {
	return brlPrinter.Sprintf("R$ %.2f", amount)
}
