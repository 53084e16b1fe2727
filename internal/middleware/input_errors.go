package middleware

import (
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// BodyKey is the Locals key under which a validated JSON body is stored.
const BodyKey = "validatedBody"

// HandleInputErrors is a Fiber middleware that checks the request against rules.
// Every failure is reported with 400 before the next handler runs.
func HandleInputErrors(v *validation.Validator, rules validation.RuleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := validation.Input{
			Params: make(map[string]string, len(rules.Path)),
			Body:   map[string]any{},
		}
		for _, rule := range rules.Path {
			in.Params[rule.Field] = c.Params(rule.Field)
		}

		// A bad path parameter is the only failure reported, whatever the body holds.
		if res := v.Validate(validation.RuleSet{Path: rules.Path}, in); !res.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": res,
			})
		}

		if len(rules.Body) > 0 {
			body, err := validation.ParseBody(c.Body())
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"errors": validation.MalformedBody(),
				})
			}
			in.Body = body
		}

		if res := v.Validate(validation.RuleSet{Body: rules.Body}, in); !res.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": res,
			})
		}

		c.Locals(BodyKey, in.Body)
		return c.Next()
	}
}
