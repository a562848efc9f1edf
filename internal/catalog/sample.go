package catalog

// SampleProducts is the static catalog served when the vector index cannot be
// reached, so the menu screens keep working during an outage.
func SampleProducts() []Product {
	return []Product{
		{
			ID:          "sorvete-chocolate",
			Name:        "Sorvete de Chocolate",
			Category:    "Sorvetes",
			Code:        "CHOC001",
			Price:       8.90,
			Description: "Delicioso sorvete de chocolate cremoso",
			Ingredients: []string{"leite", "chocolate", "açúcar"},
			Active:      true,
		},
		{
			ID:          "sorvete-morango",
			Name:        "Sorvete de Morango",
			Category:    "Sorvetes",
			Code:        "MORANGO001",
			Price:       8.90,
			Description: "Sorvete artesanal de morango com pedaços da fruta",
			Ingredients: []string{"leite", "morango", "açúcar"},
			Active:      true,
		},
		{
			ID:          "sundae-chocolate",
			Name:        "Sundae de Chocolate",
			Category:    "Sundaes",
			Code:        "SUNDAE001",
			Price:       12.90,
			Description: "Sundae com sorvete de chocolate, calda quente e chantilly",
			Ingredients: []string{"sorvete de chocolate", "calda de chocolate", "chantilly"},
			Active:      true,
		},
		{
			ID:          "sundae-morango",
			Name:        "Sundae de Morango",
			Category:    "Sundaes",
			Code:        "SUNDAE002",
			Price:       13.90,
			Description: "Sundae com sorvete de morango, calda de morango e chantilly",
			Ingredients: []string{"sorvete de morango", "calda de morango", "chantilly"},
			Active:      true,
			Promotional: true,
		},
		{
			ID:          "milkshake-chocolate",
			Name:        "Milkshake de Chocolate",
			Category:    "Milkshakes",
			Code:        "SHAKE001",
			Price:       10.90,
			Description: "Milkshake cremoso de chocolate batido na hora",
			Ingredients: []string{"sorvete de chocolate", "leite", "chantilly"},
			Active:      true,
		},
		{
			ID:          "milkshake-morango",
			Name:        "Milkshake de Morango",
			Category:    "Milkshakes",
			Code:        "SHAKE002",
			Price:       10.90,
			Description: "Milkshake cremoso de morango batido na hora",
			Ingredients: []string{"sorvete de morango", "leite", "chantilly"},
			Active:      true,
			Promotional: true,
		},
	}
}
