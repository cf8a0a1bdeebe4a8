package builder

import (
	"strings"

	"github.com/viant/ssmdoc/internal/yml"
	"gopkg.in/yaml.v3"
)

const (
	inputsNode       = "inputs"
	parametersNode   = "Parameters"
	commandsNode     = "commands"
	templateBodyNode = "TemplateBody"
	stepNameNode     = "name"
)

// ScriptLines splits a script into command lines with line terminators removed and tabs expanded to four spaces
func ScriptLines(script []byte) []string {
	text := strings.ReplaceAll(string(script), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.ReplaceAll(line, "\t", "    ")
	}
	return lines
}

// matchSteps returns every step node of the document named name
func matchSteps(root *yml.Node, stepsNodeName, name string) []*yml.Node {
	steps := root.Lookup(stepsNodeName)
	if steps == nil || steps.Kind != yaml.SequenceNode {
		return nil
	}
	var ret []*yml.Node
	_ = steps.Items(func(_ int, step *yml.Node) error {
		if step.Lookup(stepNameNode).String() == name {
			ret = append(ret, step)
		}
		return nil
	})
	return ret
}

func spliceCommands(step *yml.Node, lines []string) {
	step.Ensure(inputsNode).Ensure(parametersNode).Set(commandsNode, lines)
}

func spliceTemplate(step *yml.Node, body string) {
	step.Ensure(inputsNode).Set(templateBodyNode, body)
}
