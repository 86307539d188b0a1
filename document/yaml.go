package document

import (
	"fmt"
	"math"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaspick/oaserrors"
)

const (
	// maxYAMLDepth bounds alias expansion and nesting when converting YAML nodes.
	maxYAMLDepth = 1000
	// minYAMLNodeBudget is the value budget granted to small documents.
	minYAMLNodeBudget = 100_000
)

// MarshalYAML returns a yaml.Node tree for v so that YAML output keeps
// object member order.
func (v Value) MarshalYAML() (any, error) {
	return toYAMLNode(v)
}

// EncodeYAML encodes v as a YAML document.
func EncodeYAML(v Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("document: marshaling YAML: %w", err)
	}
	return out, nil
}

func toYAMLNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return scalarNode("!!null", "null"), nil
	case KindBool:
		if v.b {
			return scalarNode("!!bool", "true"), nil
		}
		return scalarNode("!!bool", "false"), nil
	case KindNumber:
		if !isNumberLiteral(v.text) {
			return nil, fmt.Errorf("document: invalid number literal %q", v.text)
		}
		if strings.ContainsAny(v.text, ".eE") {
			return scalarNode("!!float", v.text), nil
		}
		return scalarNode("!!int", v.text), nil
	case KindString:
		return scalarNode("!!str", v.text), nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(v.items))}
		for _, item := range v.items {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*v.obj.Len())}
		for key, val := range v.obj.All() {
			child, err := toYAMLNode(val)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", key), child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("document: unknown value kind %d", v.kind)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// decodeYAML parses YAML (a superset of JSON) into an ordered Value.
func decodeYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, err
	}
	if root.Kind == 0 {
		// empty stream
		return Null(), nil
	}
	d := &yamlDecoder{budget: yamlNodeBudget(len(data))}
	return d.value(&root, 0)
}

// yamlNodeBudget is the number of values a document of n bytes may expand
// to. Without aliases every value costs at least one byte of input, so only
// alias expansion can exceed it.
func yamlNodeBudget(n int) int {
	return max(4*n, minYAMLNodeBudget)
}

// yamlDecoder converts a node tree, counting every value it produces so
// that chains of aliases cannot expand without bound.
type yamlDecoder struct {
	budget int
	used   int
}

func (d *yamlDecoder) spend() error {
	d.used++
	if d.used > d.budget {
		return &oaserrors.ResourceLimitError{
			ResourceType: "yaml_nodes",
			Limit:        int64(d.budget),
			Message:      "YAML aliases expand to too many values",
		}
	}
	return nil
}

func (d *yamlDecoder) value(node *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Value{}, &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        maxYAMLDepth,
			Message:      "YAML document nests too deeply (recursive alias?)",
		}
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return d.value(node.Content[0], depth+1)
	case yaml.AliasNode:
		if node.Alias == nil {
			return Null(), nil
		}
		return d.value(node.Alias, depth+1)
	}
	if err := d.spend(); err != nil {
		return Value{}, err
	}
	switch node.Kind {
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := d.value(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		obj := NewObject()
		if err := d.fillMapping(obj, node, depth); err != nil {
			return Value{}, err
		}
		return FromObject(obj), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return Value{}, fmt.Errorf("document: unsupported YAML node kind %d", node.Kind)
	}
}

func (d *yamlDecoder) fillMapping(obj *Object, node *yaml.Node, depth int) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.ShortTag() == "!!merge" {
			if err := d.merge(obj, valNode, depth+1); err != nil {
				return err
			}
			continue
		}
		val, err := d.value(valNode, depth+1)
		if err != nil {
			return err
		}
		obj.Set(keyNode.Value, val)
	}
	return nil
}

// merge applies a "<<" merge key; keys already present win.
func (d *yamlDecoder) merge(obj *Object, src *yaml.Node, depth int) error {
	if depth > maxYAMLDepth {
		return &oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: maxYAMLDepth}
	}
	if src.Kind == yaml.AliasNode && src.Alias != nil {
		src = src.Alias
	}
	switch src.Kind {
	case yaml.SequenceNode:
		for _, child := range src.Content {
			if err := d.merge(obj, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		merged := NewObject()
		if err := d.fillMapping(merged, src, depth); err != nil {
			return err
		}
		for k, v := range merged.All() {
			if !obj.Has(k) {
				obj.Set(k, v)
			}
		}
		return nil
	default:
		return fmt.Errorf("document: merge key value must be a mapping, got %s", src.ShortTag())
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		if isNumberLiteral(node.Value) {
			return Number(node.Value), nil
		}
		var n int64
		if err := node.Decode(&n); err == nil {
			return Int(n), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		if isNumberLiteral(node.Value) {
			return Number(node.Value), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, fmt.Errorf("document: %q has no JSON representation", node.Value)
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}
