package ui

import "github.com/AlecAivazis/survey/v2"

// AskOptions are shared by every survey prompt: a plain "-" question icon
// and a required answer.
func AskOptions() []survey.AskOpt {
	return []survey.AskOpt{
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.Question.Text = "-"
			icons.SelectFocus.Text = ">"
		}),
		survey.WithValidator(survey.Required),
	}
}
