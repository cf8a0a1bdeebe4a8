package compiler

import (
	"strings"

	"github.com/viant/ssmdoc/model"
)

// FormatChoice renders the choice conditions as a quoted edge label with one
// condition clause per line. The choice is left intact.
func FormatChoice(choice *model.Choice) (string, error) {
	if _, ok := choice.Target(); !ok {
		return "", ErrMissingChoiceTarget
	}
	encoded, err := choice.Conditions().JSON()
	if err != nil {
		return "", err
	}
	body := string(encoded)
	if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	body = strings.ReplaceAll(body, `", "`, `"\l"`)
	body = strings.ReplaceAll(body, `"`, `\"`)
	return `"` + body + `"`, nil
}
