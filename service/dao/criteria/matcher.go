package criteria

import (
	"strings"

	"github.com/viant/ssmdoc/service/dao"
)

// MatchField reports whether value satisfies a parameter named field.
// Parameters naming other fields always match; a []string value matches any of its items.
func MatchField(field, value string, parameter *dao.Parameter) bool {
	if parameter == nil || !strings.EqualFold(parameter.Name, field) {
		return true
	}
	switch actual := parameter.Value.(type) {
	case string:
		return value == actual
	case []string:
		for _, candidate := range actual {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return true
}
