package command

import "github.com/bwmarrin/discordgo"

// OptionType tags a parameter with one of the fixed schema types. Validators
// are looked up by this tag; an unknown tag always fails validation.
type OptionType string

const (
	TypeString      OptionType = "string"
	TypeInteger     OptionType = "integer"
	TypeNumber      OptionType = "number"
	TypeBoolean     OptionType = "boolean"
	TypeUser        OptionType = "user"
	TypeChannel     OptionType = "channel"
	TypeRole        OptionType = "role"
	TypeMentionable OptionType = "mentionable"
	TypeAttachment  OptionType = "attachment"
)

// discordType maps schema tags to the wire option types.
var discordType = map[OptionType]discordgo.ApplicationCommandOptionType{
	TypeString:      discordgo.ApplicationCommandOptionString,
	TypeInteger:     discordgo.ApplicationCommandOptionInteger,
	TypeNumber:      discordgo.ApplicationCommandOptionNumber,
	TypeBoolean:     discordgo.ApplicationCommandOptionBoolean,
	TypeUser:        discordgo.ApplicationCommandOptionUser,
	TypeChannel:     discordgo.ApplicationCommandOptionChannel,
	TypeRole:        discordgo.ApplicationCommandOptionRole,
	TypeMentionable: discordgo.ApplicationCommandOptionMentionable,
	TypeAttachment:  discordgo.ApplicationCommandOptionAttachment,
}

// Choice restricts an option to a fixed set of values.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Option declares a single command parameter and its constraints. Options
// are immutable after registration.
type Option struct {
	Type        OptionType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Required    bool       `json:"required"`
	Choices     []Choice   `json:"choices,omitempty"`

	// String constraints.
	MinLength *int   `json:"min_length,omitempty"`
	MaxLength *int   `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Numeric constraints, applied to integer and number types.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IntPtr is a convenience for declaring length constraints inline.
func IntPtr(v int) *int { return &v }

// FloatPtr is a convenience for declaring numeric range constraints inline.
func FloatPtr(v float64) *float64 { return &v }

// definition serializes the option to the shape the registration endpoint
// expects. Returns nil for unknown type tags so they never reach the wire.
func (o *Option) definition() *discordgo.ApplicationCommandOption {
	dt, ok := discordType[o.Type]
	if !ok {
		return nil
	}
	def := &discordgo.ApplicationCommandOption{
		Type:        dt,
		Name:        o.Name,
		Description: o.Description,
		Required:    o.Required,
	}
	for _, c := range o.Choices {
		def.Choices = append(def.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: c.Value,
		})
	}
	if o.Type == TypeString {
		def.MinLength = o.MinLength
		if o.MaxLength != nil {
			def.MaxLength = *o.MaxLength
		}
	}
	if o.Type == TypeInteger || o.Type == TypeNumber {
		def.MinValue = o.Min
		if o.Max != nil {
			def.MaxValue = *o.Max
		}
	}
	return def
}
