package ui

import (
	"github.com/AlecAivazis/survey/v2"
)

// PromptYesNo prompts the user for a yes/no answer.
// In non-interactive mode the default is returned without prompting.
func (u *UI) PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	if u.nonInteractive {
		return defaultYes, nil
	}

	var result bool
	p := &survey.Confirm{
		Message: prompt,
		Default: defaultYes,
	}

	err := survey.AskOne(p, &result)
	return result, err
}
