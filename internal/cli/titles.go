// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// titlesDoc is the mapping form of a titles file.
type titlesDoc struct {
	Titles []string `yaml:"titles"`
}

// ReadTitles loads titles from a YAML file. The file is either a top-level
// sequence of strings or a mapping with a "titles" sequence.
func ReadTitles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading titles file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing titles file: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var titles []string
		if err := doc.Decode(&titles); err != nil {
			return nil, fmt.Errorf("parsing titles file: %w", err)
		}
		return titles, nil
	case yaml.MappingNode:
		var td titlesDoc
		if err := doc.Decode(&td); err != nil {
			return nil, fmt.Errorf("parsing titles file: %w", err)
		}
		return td.Titles, nil
	default:
		return nil, fmt.Errorf("parsing titles file: expected a list of titles or a titles: key")
	}
}

// CollectTitles returns the titles from file (if set) followed by args.
// It fails when the result is empty.
func CollectTitles(file string, args []string) ([]string, error) {
	var titles []string
	if file != "" {
		fromFile, err := ReadTitles(file)
		if err != nil {
			return nil, err
		}
		titles = append(titles, fromFile...)
	}
	titles = append(titles, args...)
	if len(titles) == 0 {
		return nil, fmt.Errorf("provide one or more paper titles")
	}
	return titles, nil
}
