// Package template holds the moment-template catalog: built-in MEPS
// standards plus user-authored custom templates persisted per user.
package template

import "github.com/techtify/ensured-billing/internal/model"

// BuiltIn returns a fresh copy of the MEPS catalog. Callers may mutate the
// result freely.
func BuiltIn() []model.MomentTemplate {
	return []model.MomentTemplate{
		{
			ID:    "mep-parkett",
			Name:  "Golv – Parkett (läggning)",
			Group: model.TemplateGroupMEPS,
			Items: []model.MomentTemplateItem{
				{Title: "Nytt parkettgolv", Code: "MAT-301", Unit: "m²", UnitPrice: 380, QtyPerKvm: 1, QtyMode: model.QtyModePerKvm},
				{Title: "Underarbete snickare", Code: "ARB-010", Unit: "tim", UnitPrice: 520, QtyPerKvm: 0.3, QtyMode: model.QtyModePerKvm},
			},
		},
		{
			ID:    "mep-riv-gips",
			Name:  "Vägg – Riv gipsvägg",
			Group: model.TemplateGroupMEPS,
			Items: []model.MomentTemplateItem{
				{Title: "Riv gipsvägg", Code: "MWU-101", Unit: "m²", UnitPrice: 220, QtyPerKvm: 1, QtyMode: model.QtyModePerKvm},
			},
		},
		{
			ID:    "mep-malning",
			Name:  "Vägg – Målning (2 strykningar)",
			Group: model.TemplateGroupMEPS,
			Items: []model.MomentTemplateItem{
				{Title: "Målning väggar", Code: "MAL-201", Unit: "m²", UnitPrice: 150, QtyPerKvm: 1, QtyMode: model.QtyModePerKvm},
				{Title: "Maskering/beredning", Code: "MAL-050", Unit: "tim", UnitPrice: 500, QtyPerKvm: 0.15, QtyMode: model.QtyModePerKvm},
			},
		},
	}
}
