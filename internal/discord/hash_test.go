package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "echo",
		Description: "Repeat a message",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What to repeat",
				Required:    true,
			},
		},
	}
}

func TestHashIsDeterministic(t *testing.T) {
	a := hashCommand(testDefinition())
	b := hashCommand(testDefinition())
	assert.Equal(t, a, b)
}

func TestHashIgnoresRuntimeFields(t *testing.T) {
	base := hashCommand(testDefinition())

	withID := testDefinition()
	withID.ID = "123456"
	withID.Version = "7"
	assert.Equal(t, base, hashCommand(withID))
}

func TestHashChangesWithDefinition(t *testing.T) {
	base := hashCommand(testDefinition())

	renamed := testDefinition()
	renamed.Description = "Shout a message"
	assert.NotEqual(t, base, hashCommand(renamed))

	constrained := testDefinition()
	constrained.Options[0].MaxLength = 2000
	assert.NotEqual(t, base, hashCommand(constrained))
}
