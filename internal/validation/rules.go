package validation

import (
	"fmt"

	"catalog/internal/models"
)

// MsgInvalidID is reported for a path id that is not an integer.
const MsgInvalidID = "ID no valido"

// IDParam requires the :id path parameter to be an integer.
var IDParam = Rule{Field: "id", Location: LocationPath, Tag: "integer", Msg: MsgInvalidID}

// Rule sets per product operation.
var (
	CreateProductRules = RuleSet{Body: FieldRules(models.ProductSchema.CreateFields())}
	UpdateProductRules = RuleSet{Path: []Rule{IDParam}, Body: FieldRules(models.ProductSchema.UpdateFields())}
	ProductIDRules     = RuleSet{Path: []Rule{IDParam}}
)

// FieldRules derives body rules from schema fields. Every check of a field
// is its own rule, so a single value can fail several of them at once.
// Decimal checks apply the field's Scale, so they judge the value the store keeps.
func FieldRules(fields []models.Field) []Rule {
	var rules []Rule
	for _, f := range fields {
		add := func(tag, msg string) {
			if msg == "" {
				msg = models.DefaultInvalidValue
			}
			rules = append(rules, Rule{Field: f.Name, Location: LocationBody, Tag: tag, Msg: msg})
		}

		switch f.Kind {
		case models.KindString:
			if f.Required {
				add("required", f.Messages.Required)
			}
		case models.KindDecimal:
			add("numeric", f.Messages.Kind)
			if f.Required {
				add("required", f.Messages.Required)
			}
			if f.Positive {
				add(fmt.Sprintf("positive=%d", f.Scale), f.Messages.Positive)
			}
			if f.Precision > 0 {
				add(fmt.Sprintf("fits=%d.%d", f.Precision, f.Scale), f.Messages.Range)
			}
		case models.KindBool:
			add("boolean", f.Messages.Kind)
		}
	}
	return rules
}
