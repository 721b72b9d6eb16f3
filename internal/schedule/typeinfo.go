package schedule

// TypeInfo is the display metadata card for a waste type.
type TypeInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Tips        []string `json:"tips"`
}

var typeInfos = map[WasteType]TypeInfo{
	Plastic: {
		Name:        "Plastique",
		Description: "Bouteilles, flacons et emballages plastiques",
		Icon:        "recycle",
		Color:       "#FFC107",
		Tips: []string{
			"Videz les bouteilles avant de les jeter",
			"Laissez les bouchons vissés sur les bouteilles",
			"Ne compactez pas les emballages imbriqués",
		},
	},
	Glass: {
		Name:        "Verre",
		Description: "Bouteilles, bocaux et pots en verre",
		Icon:        "glass",
		Color:       "#4CAF50",
		Tips: []string{
			"Retirez bouchons et couvercles",
			"Pas de vaisselle ni de vitres dans le bac à verre",
		},
	},
	Paper: {
		Name:        "Papier",
		Description: "Journaux, magazines, cartons et papiers",
		Icon:        "newspaper",
		Color:       "#2196F3",
		Tips: []string{
			"Aplatissez les cartons",
			"Pas de papiers gras ou souillés",
		},
	},
	Metal: {
		Name:        "Métal",
		Description: "Canettes, boîtes de conserve et petits métaux",
		Icon:        "can",
		Color:       "#9E9E9E",
		Tips: []string{
			"Videz les boîtes, inutile de les laver",
		},
	},
	Organic: {
		Name:        "Organique",
		Description: "Déchets alimentaires et déchets verts",
		Icon:        "leaf",
		Color:       "#795548",
		Tips: []string{
			"Compostez si vous le pouvez",
			"Pas de sacs plastiques dans les biodéchets",
		},
	},
	Electronics: {
		Name:        "Électronique",
		Description: "Appareils électriques et électroniques",
		Icon:        "cpu",
		Color:       "#673AB7",
		Tips: []string{
			"Déposez les appareils en déchetterie ou en magasin",
			"Retirez les piles avant de jeter",
		},
	},
	Textile: {
		Name:        "Textile",
		Description: "Vêtements, linge de maison et chaussures",
		Icon:        "shirt",
		Color:       "#E91E63",
		Tips: []string{
			"Donnez les vêtements en bon état",
			"Attachez les chaussures par paire",
		},
	},
}

// TypeInfoFor returns the card for a canonical type. Unknown types get
// a fallback card carrying the raw string as name, a generic
// description and no tips.
func TypeInfoFor(wasteType string) TypeInfo {
	if info, ok := typeInfos[WasteType(wasteType)]; ok {
		return info
	}
	return TypeInfo{
		Name:        wasteType,
		Description: "Type de collecte non référencé",
		Icon:        "trash",
		Color:       "#607D8B",
		Tips:        []string{},
	}
}
