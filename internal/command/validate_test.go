package command

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellebma/template-discord-bot/internal/errs"
)

func TestValidateStringLength(t *testing.T) {
	opt := &Option{Type: TypeString, Name: "message", MaxLength: IntPtr(2000)}

	assert.NoError(t, ValidateOption("hello", opt))
	assert.NoError(t, ValidateOption(strings.Repeat("a", 2000), opt))

	err := ValidateOption(strings.Repeat("a", 2001), opt)
	require.Error(t, err)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "message", ve.Field)
}

func TestValidateStringMinLengthAndPattern(t *testing.T) {
	opt := &Option{Type: TypeString, Name: "code", MinLength: IntPtr(3), Pattern: `^[a-z]+$`}

	assert.Error(t, ValidateOption("ab", opt))
	assert.Error(t, ValidateOption("abc123", opt))
	assert.NoError(t, ValidateOption("abc", opt))
}

func TestValidateStringCountsRunes(t *testing.T) {
	opt := &Option{Type: TypeString, Name: "message", MaxLength: IntPtr(3)}
	assert.NoError(t, ValidateOption("héo", opt))
	assert.Error(t, ValidateOption("hééélo", opt))
}

func TestValidateInteger(t *testing.T) {
	opt := &Option{Type: TypeInteger, Name: "count", Min: FloatPtr(1), Max: FloatPtr(100)}

	assert.NoError(t, ValidateOption(int64(50), opt))
	assert.Error(t, ValidateOption(int64(0), opt))
	assert.Error(t, ValidateOption(int64(101), opt))
	assert.Error(t, ValidateOption(1.5, opt))
	assert.Error(t, ValidateOption("50", opt))
}

func TestValidateNumber(t *testing.T) {
	opt := &Option{Type: TypeNumber, Name: "ratio", Min: FloatPtr(0), Max: FloatPtr(1)}

	assert.NoError(t, ValidateOption(0.25, opt))
	assert.Error(t, ValidateOption(1.5, opt))
	assert.Error(t, ValidateOption("0.5", opt))
}

func TestValidateBoolean(t *testing.T) {
	opt := &Option{Type: TypeBoolean, Name: "silent"}

	assert.NoError(t, ValidateOption(true, opt))
	assert.Error(t, ValidateOption("true", opt))
}

func TestValidateEntities(t *testing.T) {
	assert.NoError(t, ValidateOption(&discordgo.User{ID: "1"}, &Option{Type: TypeUser, Name: "target"}))
	assert.Error(t, ValidateOption(&discordgo.User{}, &Option{Type: TypeUser, Name: "target"}))
	assert.Error(t, ValidateOption(nil, &Option{Type: TypeUser, Name: "target"}))

	assert.NoError(t, ValidateOption(&discordgo.Channel{ID: "2"}, &Option{Type: TypeChannel, Name: "where"}))
	assert.NoError(t, ValidateOption(&discordgo.Role{ID: "3"}, &Option{Type: TypeRole, Name: "role"}))

	assert.NoError(t, ValidateOption(&discordgo.User{ID: "1"}, &Option{Type: TypeMentionable, Name: "who"}))
	assert.NoError(t, ValidateOption(&discordgo.Role{ID: "3"}, &Option{Type: TypeMentionable, Name: "who"}))
	assert.Error(t, ValidateOption("1", &Option{Type: TypeMentionable, Name: "who"}))

	assert.NoError(t, ValidateOption(&discordgo.MessageAttachment{URL: "https://cdn.example/x.png"},
		&Option{Type: TypeAttachment, Name: "file"}))
	assert.Error(t, ValidateOption(&discordgo.MessageAttachment{}, &Option{Type: TypeAttachment, Name: "file"}))
}

func TestValidateUnknownTypeFailsClosed(t *testing.T) {
	opt := &Option{Type: OptionType("hologram"), Name: "weird"}

	err := ValidateOption("anything", opt)
	require.Error(t, err)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "hologram")
}
