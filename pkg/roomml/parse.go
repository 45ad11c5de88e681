package roomml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	apperr "github.com/roomml/roomml/pkg/errors"
)

// Parse decodes a RoomML document and assigns ids to nodes that lack one.
// The input is JSON extended with // and /* */ comments and trailing
// commas.
//
// Parse fails only when the text is not a tree at all: malformed JSON, a
// root without a type, or a null entry in a children list. Geometric
// problems are left for validation.
func Parse(data []byte) (*Node, error) {
	root, err := decode(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}
	AssignIDs(root)
	return root, nil
}

// ParseYAML decodes a RoomML document written in YAML. Field names are the
// same as in the JSON form.
func ParseYAML(data []byte) (*Node, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode yaml")
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "convert yaml")
	}
	return Parse(js)
}

// ParseFile reads and parses the document at path. Files ending in .yaml or
// .yml are read as YAML; everything else as JSON with comments.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if IsYAMLPath(path) {
		return ParseYAML(data)
	}
	return Parse(data)
}

// IsYAMLPath reports whether path has a YAML extension.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// MustParse is like [Parse] but panics on error. It is intended for
// documents embedded in code.
func MustParse(data []byte) *Node {
	n, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return n
}

// Marshal encodes the tree as indented JSON.
func Marshal(n *Node) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}

// MarshalYAML encodes the tree as block-style YAML with fields in the same
// order as [Marshal].
func MarshalYAML(n *Node) ([]byte, error) {
	js, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	// JSON is valid YAML; decoding it into a yaml.Node keeps the key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(js, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return yaml.Marshal(&doc)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func decode(data []byte) (*Node, error) {
	var root *Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidDocument, err, "decode document")
	}
	if root == nil {
		return nil, apperr.New(apperr.ErrCodeInvalidDocument, "document is empty")
	}
	if err := checkShape(root, nil); err != nil {
		return nil, err
	}
	return root, nil
}

// checkShape rejects trees the core cannot walk: typeless nodes and null
// children.
func checkShape(n *Node, path []string) error {
	path = append(path, n.Label())
	if n.Type == "" {
		return apperr.New(apperr.ErrCodeInvalidDocument, "node at %s has no type", strings.Join(path, "/"))
	}
	for i, c := range n.Children {
		if c == nil {
			return apperr.New(apperr.ErrCodeInvalidDocument, "%s: children[%d] is null", strings.Join(path, "/"), i)
		}
		if err := checkShape(c, path); err != nil {
			return err
		}
	}
	return nil
}
