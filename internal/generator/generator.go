// Package generator emits boilerplate for a new slash command: a Go source
// file following the layout of internal/commands, and a JSON description of
// the same schema. Developer tooling only; nothing at runtime depends on it.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// OptionSpec describes one parameter of the command to generate.
type OptionSpec struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	MinLength   *int     `json:"min_length,omitempty"`
	MaxLength   *int     `json:"max_length,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
}

// Spec is the full description of the command to generate.
type Spec struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Cooldown    int          `json:"cooldown"`
	Permissions []string     `json:"permissions,omitempty"`
	Options     []OptionSpec `json:"options,omitempty"`
}

// permissionConstants maps the names accepted in a Spec to discordgo
// permission constant identifiers used in the generated source.
var permissionConstants = map[string]string{
	"Administrator":      "PermissionAdministrator",
	"ManageServer":       "PermissionManageServer",
	"ManageGuild":        "PermissionManageServer",
	"ManageChannels":     "PermissionManageChannels",
	"ManageMessages":     "PermissionManageMessages",
	"ManageRoles":        "PermissionManageRoles",
	"KickMembers":        "PermissionKickMembers",
	"BanMembers":         "PermissionBanMembers",
	"ModerateMembers":    "PermissionModerateMembers",
	"SendMessages":       "PermissionSendMessages",
	"EmbedLinks":         "PermissionEmbedLinks",
	"AttachFiles":        "PermissionAttachFiles",
	"MentionEveryone":    "PermissionMentionEveryone",
	"ReadMessageHistory": "PermissionReadMessageHistory",
}

var optionConstructors = map[string]string{
	"string":      "command.TypeString",
	"integer":     "command.TypeInteger",
	"number":      "command.TypeNumber",
	"boolean":     "command.TypeBoolean",
	"user":        "command.TypeUser",
	"channel":     "command.TypeChannel",
	"role":        "command.TypeRole",
	"mentionable": "command.TypeMentionable",
	"attachment":  "command.TypeAttachment",
}

// Validate checks the spec for problems the templates cannot express.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("command name is required")
	}
	if strings.ToLower(s.Name) != s.Name || strings.ContainsAny(s.Name, " \t") {
		return fmt.Errorf("command name %q must be lowercase without spaces", s.Name)
	}
	for _, p := range s.Permissions {
		if _, ok := permissionConstants[p]; !ok {
			return fmt.Errorf("unknown permission %q", p)
		}
	}
	for _, o := range s.Options {
		if _, ok := optionConstructors[strings.ToLower(o.Type)]; !ok {
			return fmt.Errorf("option %q has unknown type %q", o.Name, o.Type)
		}
		if o.Name == "" {
			return fmt.Errorf("every option needs a name")
		}
	}
	return nil
}

var sourceTemplate = template.Must(template.New("command").Funcs(template.FuncMap{
	"title":      exportedName,
	"permConst":  func(p string) string { return permissionConstants[p] },
	"typeConst":  func(t string) string { return optionConstructors[strings.ToLower(t)] },
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
	"derefInt":   func(p *int) int { return *p },
	"derefFloat": func(p *float64) float64 { return *p },
}).Parse(`package commands

import (
	"github.com/tellebma/template-discord-bot/internal/command"
{{- if .Permissions}}

	"github.com/bwmarrin/discordgo"
{{- end}}
)

// {{title .Name}} is the /{{.Name}} command.
func {{title .Name}}() *command.Command {
	return &command.Command{
		Name:        {{quote .Name}},
		Description: {{quote .Description}},
{{- if .Category}}
		Category:    {{quote .Category}},
{{- end}}
{{- if .Cooldown}}
		Cooldown:    {{.Cooldown}},
{{- end}}
{{- if .Permissions}}
		Permissions: []int64{
{{- range .Permissions}}
			discordgo.{{permConst .}},
{{- end}}
		},
{{- end}}
{{- if .Options}}
		Options: []*command.Option{
{{- range .Options}}
			{
				Type:        {{typeConst .Type}},
				Name:        {{quote .Name}},
				Description: {{quote .Description}},
{{- if .Required}}
				Required:    true,
{{- end}}
{{- if .MinLength}}
				MinLength:   command.IntPtr({{derefInt .MinLength}}),
{{- end}}
{{- if .MaxLength}}
				MaxLength:   command.IntPtr({{derefInt .MaxLength}}),
{{- end}}
{{- if .Min}}
				Min:         command.FloatPtr({{derefFloat .Min}}),
{{- end}}
{{- if .Max}}
				Max:         command.FloatPtr({{derefFloat .Max}}),
{{- end}}
{{- if .Pattern}}
				Pattern:     {{quote .Pattern}},
{{- end}}
			},
{{- end}}
		},
{{- end}}
		Handler: func(ctx *command.Context) error {
			return ctx.Reply("{{.Name}} is not implemented yet")
		},
	}
}
`))

// exportedName turns a command name like "add-role" into "AddRole".
func exportedName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Source renders the Go source file for the command.
func (s *Spec) Source() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("failed to render source: %w", err)
	}
	return buf.Bytes(), nil
}

// Schema renders the JSON description of the command.
func (s *Spec) Schema() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFiles persists both artifacts to dir, creating it if absent. It
// returns the paths written.
func (s *Spec) WriteFiles(dir string) (sourcePath, schemaPath string, err error) {
	source, err := s.Source()
	if err != nil {
		return "", "", err
	}
	schema, err := s.Schema()
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output dir: %w", err)
	}

	base := strings.ReplaceAll(s.Name, "-", "_")
	sourcePath = filepath.Join(dir, base+".go")
	schemaPath = filepath.Join(dir, s.Name+"-command.json")

	if err := os.WriteFile(sourcePath, source, 0644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(schemaPath, schema, 0644); err != nil {
		return "", "", err
	}
	return sourcePath, schemaPath, nil
}
