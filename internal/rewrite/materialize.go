package rewrite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// decodeDescriptor parses configJSON, keeping object keys in source order so
// the generated object literal is reproducible.
func decodeDescriptor(configJSON string) (*orderedmap.OrderedMap[string, any], error) {
	dec := json.NewDecoder(strings.NewReader(configJSON))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after descriptor", ErrConfig)
	}
	obj, ok := v.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return nil, fmt.Errorf("%w: descriptor must be a JSON object", ErrConfig)
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := orderedmap.NewOrderedMap[string, any]()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// materializeConfig converts a decoded descriptor into an object expression.
// The plugins field is special: its string value lists identifiers that must
// be referenced, not quoted.
func materializeConfig(desc *orderedmap.OrderedMap[string, any]) (exprNode, error) {
	obj := exprNode{Kind: exprKindObject}
	for key, val := range desc.AllFromFront() {
		if s, ok := val.(string); ok && key == pluginsField {
			plugins, err := pluginIdentifiers(s)
			if err != nil {
				return exprNode{}, err
			}
			obj.Props = append(obj.Props, propNode{Key: key, Value: plugins})
			continue
		}
		node, err := valueToNode(val)
		if err != nil {
			return exprNode{}, fmt.Errorf("%w: field %q: %v", ErrConfig, key, err)
		}
		obj.Props = append(obj.Props, propNode{Key: key, Value: node})
	}
	return obj, nil
}

// pluginIdentifiers turns "[a, b]" into an array of identifier references.
func pluginIdentifiers(list string) (exprNode, error) {
	arr := exprNode{Kind: exprKindArray}
	list = strings.TrimSpace(list)
	list = strings.TrimSuffix(strings.TrimPrefix(list, "["), "]")
	for piece := range strings.SplitSeq(list, ",") {
		name := strings.TrimSpace(piece)
		if name == "" {
			continue
		}
		if !isIdentifierReference(name) {
			return exprNode{}, fmt.Errorf("%w: plugin %q is not an identifier", ErrConfig, name)
		}
		arr.Elems = append(arr.Elems, exprNode{Kind: exprKindIdent, Text: name})
	}
	return arr, nil
}

// valueToNode converts a decoded JSON value into a literal expression tree.
func valueToNode(v any) (exprNode, error) {
	switch val := v.(type) {
	case nil:
		return exprNode{Kind: exprKindLiteral, Text: "null"}, nil
	case bool:
		if val {
			return exprNode{Kind: exprKindLiteral, Text: "true"}, nil
		}
		return exprNode{Kind: exprKindLiteral, Text: "false"}, nil
	case json.Number:
		return exprNode{Kind: exprKindLiteral, Text: val.String()}, nil
	case string:
		lit, err := stringLiteral(val)
		if err != nil {
			return exprNode{}, err
		}
		return exprNode{Kind: exprKindLiteral, Text: lit}, nil
	case []any:
		arr := exprNode{Kind: exprKindArray}
		for _, e := range val {
			node, err := valueToNode(e)
			if err != nil {
				return exprNode{}, err
			}
			arr.Elems = append(arr.Elems, node)
		}
		return arr, nil
	case *orderedmap.OrderedMap[string, any]:
		obj := exprNode{Kind: exprKindObject}
		for key, e := range val.AllFromFront() {
			node, err := valueToNode(e)
			if err != nil {
				return exprNode{}, err
			}
			obj.Props = append(obj.Props, propNode{Key: key, Value: node})
		}
		return obj, nil
	}
	return exprNode{}, fmt.Errorf("unsupported value of type %T", v)
}

// stringLiteral quotes s as a double-quoted JavaScript string.
func stringLiteral(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
