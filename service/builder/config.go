package builder

import "fmt"

// Insert types supported in a folder config
const (
	InsertCommand        = "Command"
	InsertCloudFormation = "CloudFormation"
)

// FolderConfigName is the name of the optional per folder splice config
const FolderConfigName = "config.json"

type (
	// Config lists the documents to build
	Config struct {
		Documents []*Source `json:"documents" yaml:"documents"`
	}

	// Source locates a document: <Folder>/<Name>.json
	Source struct {
		Name   string `json:"documentName" yaml:"documentName"`
		Folder string `json:"documentFolder" yaml:"documentFolder"`
	}

	// FolderConfig lists the inserts applied to a document
	FolderConfig struct {
		Build []*Insert `json:"build" yaml:"build"`
	}

	// Insert splices the content of File into the step named StepName
	Insert struct {
		Type     string `json:"type" yaml:"type"`
		StepName string `json:"stepName" yaml:"stepName"`
		File     string `json:"file" yaml:"file"`
	}
)

// Validate checks the build config
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("build config was nil")
	}
	for i, source := range c.Documents {
		if source == nil || source.Name == "" {
			return fmt.Errorf("document %d: documentName was empty", i)
		}
	}
	return nil
}

// Validate checks the insert
func (i *Insert) Validate() error {
	switch i.Type {
	case InsertCommand, InsertCloudFormation:
	default:
		return fmt.Errorf("unsupported insert type %q for step %s", i.Type, i.StepName)
	}
	if i.StepName == "" {
		return fmt.Errorf("%s insert: stepName was empty", i.Type)
	}
	if i.File == "" {
		return fmt.Errorf("%s insert for step %s: file was empty", i.Type, i.StepName)
	}
	return nil
}
