package resource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlWalker edits the node tree in place so comments, anchors and key
// order survive re-encoding.
type yamlWalker struct{}

func (yamlWalker) Format() Format { return YAML }

func (yamlWalker) Walk(r io.Reader, w io.Writer, fn Func) (int, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, invalid(YAML, err)
		}
		docs = append(docs, &doc)
	}
	if len(docs) == 0 {
		return 0, invalid(YAML, errors.New("empty document"))
	}

	n := 0
	for _, doc := range docs {
		n += walkYAML(doc, "", fn)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return n, err
		}
	}
	return n, enc.Close()
}

func walkYAML(node *yaml.Node, path string, fn Func) int {
	switch node.Kind {
	case yaml.DocumentNode:
		n := 0
		for _, c := range node.Content {
			n += walkYAML(c, path, fn)
		}
		return n
	case yaml.MappingNode:
		n := 0
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			n += walkYAML(val, joinKey(path, key.Value), fn)
		}
		return n
	case yaml.SequenceNode:
		n := 0
		for i, c := range node.Content {
			n += walkYAML(c, fmt.Sprintf("%s[%d]", path, i), fn)
		}
		return n
	case yaml.ScalarNode:
		if node.ShortTag() != "!!str" {
			return 0
		}
		node.Value = fn(Entry{Name: path, Value: node.Value})
		return 1
	}
	// Aliases point at nodes that are visited where they are anchored.
	return 0
}
