package render

var (
	statusLabels = map[string]string{
		StatusPending:    "En Attente",
		StatusPreparing:  "En Préparation",
		StatusReady:      "Prête",
		StatusCompleted:  "Terminée",
		StatusPaid:       "Payé",
		StatusRefunded:   "Remboursé",
		StatusAvailable:  "Disponible",
		StatusLowStock:   "Stock Faible",
		StatusOutOfStock: "Rupture",
		StatusExpired:    "Expiré",
	}

	categoryLabels = map[string]string{
		"coffee":    "Café",
		"pastry":    "Pâtisserie",
		"equipment": "Équipement",
		"supplies":  "Fournitures",
	}

	paymentLabels = map[string]string{
		"cash":   "Espèces",
		"card":   "Carte",
		"mobile": "Mobile",
		"check":  "Chèque",
	}
)

// TranslateStatus returns the display label of a status. Unknown values pass through.
func TranslateStatus(s string) string {
	return lookup(statusLabels, s)
}

// TranslateCategory returns the display label of a product category.
func TranslateCategory(s string) string {
	return lookup(categoryLabels, s)
}

// TranslatePaymentMethod returns the display label of a payment method.
func TranslatePaymentMethod(s string) string {
	return lookup(paymentLabels, s)
}

func lookup(m map[string]string, k string) string {
	if l, ok := m[k]; ok {
		return l
	}
	return k
}
