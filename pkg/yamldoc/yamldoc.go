// Package yamldoc reads, edits and writes YAML configuration documents.
//
// Documents are kept as yaml.Node trees so that adding a missing key to an
// existing file preserves the user's ordering and comments.
package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/backbee/bbinstall/pkg/defaults"
	bberrors "github.com/backbee/bbinstall/pkg/errors"
)

// Indent matches the four-space layout of BackBee's shipped configuration.
const Indent = 4

// Document is a YAML document whose root is a mapping.
type Document struct {
	root *yaml.Node
}

// New returns an empty document.
func New() *Document {
	return &Document{root: &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}}
}

// Parse parses data. Empty input yields an empty document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return New(), nil
	}

	top := root.Content[0]
	switch {
	case top.Kind == yaml.MappingNode:
	case isNull(top):
		root.Content[0] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	default:
		return nil, fmt.Errorf("document root must be a mapping, got %s", kindName(top))
	}
	return &Document{root: &root}, nil
}

// Exists reports whether a regular file or directory is present at path.
func Exists(fs billy.Filesystem, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
		"failed to stat file", err, map[string]any{"path": path})
}

// Read loads the document at path. A missing file yields an empty document
// and found=false.
func Read(fs billy.Filesystem, path string) (doc *Document, found bool, err error) {
	data, err := util.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), false, nil
	}
	if err != nil {
		return nil, false, bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to read document", err, map[string]any{"path": path})
	}

	doc, err = Parse(data)
	if err != nil {
		return nil, true, bberrors.WrapWithContext(bberrors.ErrCodeParse,
			"malformed YAML document", err, map[string]any{"path": path})
	}
	return doc, true, nil
}

// Lookup returns the node at the mapping path, e.g. Lookup("parameters", "secret_key").
func (d *Document) Lookup(path ...string) (*yaml.Node, bool) {
	node := d.mapping()
	for _, key := range path {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil, false
		}
		node = valueOf(node, key)
		if node == nil {
			return nil, false
		}
	}
	return node, true
}

// Has reports whether the mapping path exists, even with a null value.
func (d *Document) Has(path ...string) bool {
	_, ok := d.Lookup(path...)
	return ok
}

// SetDefault stores value at the mapping path unless the path already
// exists. Missing or null intermediate mappings are created. It returns
// whether the document changed.
func (d *Document) SetDefault(value any, path ...string) (bool, error) {
	if len(path) == 0 {
		return false, fmt.Errorf("empty path")
	}

	node := d.mapping()
	for i, key := range path[:len(path)-1] {
		child := valueOf(node, key)
		switch {
		case child == nil:
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalarKey(key), child)
		case isNull(child):
			*child = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		case child.Kind != yaml.MappingNode:
			return false, fmt.Errorf("%v is a %s, not a mapping", path[:i+1], kindName(child))
		}
		node = child
	}

	last := path[len(path)-1]
	if valueOf(node, last) != nil {
		return false, nil
	}

	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return false, fmt.Errorf("failed to encode %v: %w", path, err)
	}
	node.Content = append(node.Content, scalarKey(last), &v)
	return true, nil
}

// Keys returns the keys of the mapping at path in document order.
func (d *Document) Keys(path ...string) []string {
	node, ok := d.Lookup(path...)
	if !ok || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// Decode decodes the node at path into out. A missing path leaves out untouched.
func (d *Document) Decode(out any, path ...string) error {
	node, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	return node.Decode(out)
}

// Node returns the document node for encoding.
func (d *Document) Node() *yaml.Node {
	return d.root
}

// ParametersMap decodes the top-level "parameters" mapping.
func (d *Document) ParametersMap() (map[string]any, error) {
	params := map[string]any{}
	if err := d.Decode(&params, defaults.ParametersRootKey); err != nil {
		return nil, err
	}
	return params, nil
}

// Marshal encodes v with the package indentation.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write marshals v, which may be a *Document, and writes it to path.
// Parent directories are created as needed.
func Write(fs billy.Filesystem, path string, v any) error {
	return WriteMode(fs, path, v, defaults.ConfigFileMode)
}

// WriteMode is like Write but creates the file with mode. An existing file
// keeps its mode.
func WriteMode(fs billy.Filesystem, path string, v any, mode os.FileMode) error {
	if doc, ok := v.(*Document); ok {
		v = doc.Node()
	}

	data, err := Marshal(v)
	if err != nil {
		return bberrors.WrapWithContext(bberrors.ErrCodeInternal,
			"failed to encode document", err, map[string]any{"path": path})
	}
	if err := util.WriteFile(fs, path, data, mode); err != nil {
		return bberrors.WrapWithContext(bberrors.ErrCodeFilesystem,
			"failed to write document", err, map[string]any{"path": path})
	}
	return nil
}

func (d *Document) mapping() *yaml.Node {
	return d.root.Content[0]
}

func valueOf(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func scalarKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "mapping"
	}
}
