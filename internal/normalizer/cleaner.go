package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"copartinv/internal/model"
)

// currencySuffix casa o código de moeda no fim do valor, ex: "1500.00 BRL".
var currencySuffix = regexp.MustCompile(`\s+[A-Z]{3}$`)

// CleanCurrency remove o sufixo de moeda e os espaços ao redor.
// É só substituição de texto: valores mal formados passam apenas aparados.
func CleanCurrency(s string) string {
	s = strings.TrimSpace(s)
	for currencySuffix.MatchString(s) {
		s = strings.TrimSpace(currencySuffix.ReplaceAllString(s, ""))
	}
	return s
}

// IsDecimal indica se um valor já limpo é um decimal válido.
func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

// Project reduz as 21 colunas do export aos 11 campos expostos pela API.
func Project(rec model.RawRecord) model.InventoryItem {
	return model.InventoryItem{
		LotNumber:   rec["lot_number"],
		Year:        rec["year"],
		Make:        rec["make"],
		Model:       rec["model"],
		Category:    rec["category"],
		DamageType:  rec["damage_type"],
		VehicleYard: rec["vehicle_yard"],
		AuctionDate: rec["auction_date"],
		CurrentBid:  CleanCurrency(rec["current_bid"]),
		FipeValue:   CleanCurrency(rec["fipe_value"]),
		URLDetalhe:  rec["url_detalhe"],
	}
}

// countMalformedMoney conta valores de lance/FIPE que não são decimais.
func countMalformedMoney(items []model.InventoryItem) int {
	n := 0
	for _, it := range items {
		if !IsDecimal(it.CurrentBid) {
			n++
		}
		if !IsDecimal(it.FipeValue) {
			n++
		}
	}
	return n
}
