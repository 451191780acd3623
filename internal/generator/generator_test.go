package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() *Spec {
	max := 2000
	return &Spec{
		Name:        "greet",
		Description: "Say hello",
		Category:    "fun",
		Cooldown:    5,
		Permissions: []string{"SendMessages"},
		Options: []OptionSpec{
			{Type: "string", Name: "target", Description: "Who to greet", Required: true, MaxLength: &max},
			{Type: "integer", Name: "times", Description: "How many times"},
		},
	}
}

func TestSourceContainsDeclaration(t *testing.T) {
	source, err := testSpec().Source()
	require.NoError(t, err)

	text := string(source)
	assert.Contains(t, text, "package commands")
	assert.Contains(t, text, "func Greet() *command.Command")
	assert.Contains(t, text, `Name:        "greet"`)
	assert.Contains(t, text, "Cooldown:    5")
	assert.Contains(t, text, "discordgo.PermissionSendMessages")
	assert.Contains(t, text, "command.TypeString")
	assert.Contains(t, text, "command.TypeInteger")
	assert.Contains(t, text, "command.IntPtr(2000)")
}

func TestSourceExportedNameFromHyphenated(t *testing.T) {
	spec := &Spec{Name: "add-role", Description: "x"}
	source, err := spec.Source()
	require.NoError(t, err)
	assert.Contains(t, string(source), "func AddRole() *command.Command")
}

func TestSchemaRoundTrip(t *testing.T) {
	data, err := testSpec().Schema()
	require.NoError(t, err)

	var decoded Spec
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "greet", decoded.Name)
	require.Len(t, decoded.Options, 2)
	assert.True(t, decoded.Options[0].Required)
	require.NotNil(t, decoded.Options[0].MaxLength)
	assert.Equal(t, 2000, *decoded.Options[0].MaxLength)
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	assert.Error(t, (&Spec{}).Validate())
	assert.Error(t, (&Spec{Name: "Greet"}).Validate())
	assert.Error(t, (&Spec{Name: "greet", Permissions: []string{"FlyToTheMoon"}}).Validate())
	assert.Error(t, (&Spec{Name: "greet", Options: []OptionSpec{{Type: "hologram", Name: "x"}}}).Validate())
	assert.Error(t, (&Spec{Name: "greet", Options: []OptionSpec{{Type: "string"}}}).Validate())
	assert.NoError(t, (&Spec{Name: "greet"}).Validate())
}

func TestWriteFilesCreatesDirectoryAndPair(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated", "commands")

	sourcePath, schemaPath, err := testSpec().WriteFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "greet.go"), sourcePath)
	assert.Equal(t, filepath.Join(dir, "greet-command.json"), schemaPath)

	source, err := os.ReadFile(sourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(source), "func Greet()")

	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Contains(t, string(schema), `"name": "greet"`)
}

func TestWriteFilesHyphenatedName(t *testing.T) {
	dir := t.TempDir()
	spec := &Spec{Name: "add-role", Description: "x"}

	sourcePath, schemaPath, err := spec.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "add_role.go"), sourcePath)
	assert.Equal(t, filepath.Join(dir, "add-role-command.json"), schemaPath)
}
