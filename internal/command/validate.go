package command

import (
	"fmt"
	"math"
	"regexp"

	"github.com/bwmarrin/discordgo"

	"github.com/tellebma/template-discord-bot/internal/errs"
)

// validator is a pure predicate over (value, constraints). It returns nil
// when the value satisfies the option's declared schema.
type validator func(value any, opt *Option) error

var validators = map[OptionType]validator{
	TypeString:      validateString,
	TypeInteger:     validateInteger,
	TypeNumber:      validateNumber,
	TypeBoolean:     validateBoolean,
	TypeUser:        validateUser,
	TypeChannel:     validateChannel,
	TypeRole:        validateRole,
	TypeMentionable: validateMentionable,
	TypeAttachment:  validateAttachment,
}

// ValidateOption checks an extracted value against its option schema.
// Unknown type tags fail closed.
func ValidateOption(value any, opt *Option) error {
	v, ok := validators[opt.Type]
	if !ok {
		return errs.NewValidation(opt.Name, string(opt.Type), value,
			fmt.Sprintf("unknown parameter type %q", opt.Type))
	}
	return v(value, opt)
}

func invalid(opt *Option, value any, reason string) error {
	return errs.NewValidation(opt.Name, string(opt.Type), value, reason)
}

func validateString(value any, opt *Option) error {
	s, ok := value.(string)
	if !ok {
		return invalid(opt, value, "expected text")
	}
	length := len([]rune(s))
	if opt.MinLength != nil && length < *opt.MinLength {
		return invalid(opt, value, fmt.Sprintf("must be at least %d characters", *opt.MinLength))
	}
	if opt.MaxLength != nil && length > *opt.MaxLength {
		return invalid(opt, value, fmt.Sprintf("must be at most %d characters", *opt.MaxLength))
	}
	if opt.Pattern != "" {
		re, err := regexp.Compile(opt.Pattern)
		if err != nil {
			return invalid(opt, value, "declared pattern does not compile")
		}
		if !re.MatchString(s) {
			return invalid(opt, value, fmt.Sprintf("must match pattern %s", opt.Pattern))
		}
	}
	return nil
}

func validateInteger(value any, opt *Option) error {
	var n float64
	switch v := value.(type) {
	case int64:
		n = float64(v)
	case int:
		n = float64(v)
	case float64:
		if v != math.Trunc(v) {
			return invalid(opt, value, "expected a whole number")
		}
		n = v
	default:
		return invalid(opt, value, "expected a whole number")
	}
	return checkRange(n, value, opt)
}

func validateNumber(value any, opt *Option) error {
	var n float64
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return invalid(opt, value, "expected a number")
		}
		n = v
	case int64:
		n = float64(v)
	case int:
		n = float64(v)
	default:
		return invalid(opt, value, "expected a number")
	}
	return checkRange(n, value, opt)
}

func checkRange(n float64, value any, opt *Option) error {
	if opt.Min != nil && n < *opt.Min {
		return invalid(opt, value, fmt.Sprintf("must be at least %v", *opt.Min))
	}
	if opt.Max != nil && n > *opt.Max {
		return invalid(opt, value, fmt.Sprintf("must be at most %v", *opt.Max))
	}
	return nil
}

func validateBoolean(value any, opt *Option) error {
	if _, ok := value.(bool); !ok {
		return invalid(opt, value, "expected true or false")
	}
	return nil
}

func validateUser(value any, opt *Option) error {
	u, ok := value.(*discordgo.User)
	if !ok || u == nil || u.ID == "" {
		return invalid(opt, value, "expected a user")
	}
	return nil
}

func validateChannel(value any, opt *Option) error {
	ch, ok := value.(*discordgo.Channel)
	if !ok || ch == nil || ch.ID == "" {
		return invalid(opt, value, "expected a channel")
	}
	return nil
}

func validateRole(value any, opt *Option) error {
	r, ok := value.(*discordgo.Role)
	if !ok || r == nil || r.ID == "" {
		return invalid(opt, value, "expected a role")
	}
	return nil
}

func validateMentionable(value any, opt *Option) error {
	switch v := value.(type) {
	case *discordgo.User:
		if v != nil && v.ID != "" {
			return nil
		}
	case *discordgo.Role:
		if v != nil && v.ID != "" {
			return nil
		}
	}
	return invalid(opt, value, "expected a user or role")
}

func validateAttachment(value any, opt *Option) error {
	a, ok := value.(*discordgo.MessageAttachment)
	if !ok || a == nil || a.URL == "" {
		return invalid(opt, value, "expected an attachment")
	}
	return nil
}
