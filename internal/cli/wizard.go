package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

// runAgentWizard collects the fields of a create request interactively,
// pre-populating anything already supplied via flags.
func runAgentWizard(in io.Reader, out io.Writer, seed api.CreateAgentRequest, templates []domain.Template) (api.CreateAgentRequest, error) {
	name := seed.Name
	description := seed.Description
	templateID := seed.TemplateID
	prompt := seed.SystemPrompt
	voice := seed.VoiceID
	if voice == "" {
		voice = domain.DefaultVoiceID
	}

	options := make([]huh.Option[string], 0, len(templates))
	for _, t := range templates {
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", domain.TemplateIcon(t.ID), t.Name), t.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Agent name").
				Placeholder("Project Helper").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("What is this agent for?").
				Value(&description),
			huh.NewSelect[string]().
				Title("Template").
				Options(options...).
				Value(&templateID),
			huh.NewText().
				Title("System prompt").
				Placeholder("You are a helpful voice assistant for…").
				Value(&prompt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("system prompt is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Voice").
				Value(&voice),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return api.CreateAgentRequest{}, fmt.Errorf("wizard failed: %w", err)
	}

	return api.CreateAgentRequest{
		Name:         strings.TrimSpace(name),
		Description:  strings.TrimSpace(description),
		TemplateID:   templateID,
		SystemPrompt: strings.TrimSpace(prompt),
		VoiceID:      strings.TrimSpace(voice),
	}, nil
}

// builtinTemplates mirrors the backend's stock template set for when it
// cannot be reached.
func builtinTemplates() []domain.Template {
	return []domain.Template{
		{ID: domain.TemplateGeneral, Name: "General Assistant", Description: "A general-purpose voice assistant"},
		{ID: domain.TemplateProject, Name: "Project Assistant", Description: "Answers questions about a project"},
		{ID: domain.TemplateTechStack, Name: "Tech Stack Expert", Description: "Knows your tools and frameworks"},
		{ID: domain.TemplateClient, Name: "Client Liaison", Description: "Briefs clients on progress"},
	}
}
