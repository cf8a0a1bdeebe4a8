package yml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"
)

const hexDigits = "0123456789abcdef"

// DecodeJSON decodes JSON into an order preserving node tree
func DecodeJSON(data []byte) (*Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	node, err := decodeJSONValue(decoder)
	if err != nil {
		return nil, err
	}
	if _, err = decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after JSON value")
	}
	return node, nil
}

func decodeJSONValue(decoder *json.Decoder) (*Node, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch actual := token.(type) {
	case json.Delim:
		switch actual {
		case '{':
			ret := (*Node)(NewMap())
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key %v", keyToken)
				}
				value, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, err
				}
				ret.Content = append(ret.Content, newScalar(key), (*yaml.Node)(value))
			}
			if _, err = decoder.Token(); err != nil {
				return nil, err
			}
			return ret, nil
		case '[':
			ret := (*Node)(NewSlice())
			for decoder.More() {
				value, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, err
				}
				ret.Content = append(ret.Content, (*yaml.Node)(value))
			}
			if _, err = decoder.Token(); err != nil {
				return nil, err
			}
			return ret, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", actual)
	case string:
		return (*Node)(newScalar(actual)), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(actual.String(), ".eE") {
			tag = "!!float"
		}
		return &Node{Kind: yaml.ScalarNode, Tag: tag, Value: actual.String()}, nil
	case bool:
		return (*Node)(newScalar(actual)), nil
	case nil:
		return (*Node)(newScalar(nil)), nil
	}
	return nil, fmt.Errorf("unsupported JSON token %T", token)
}

// EncodeJSON writes the node as JSON using ", " and ": " separators with
// non ASCII characters escaped, keeping mapping key order.
func (n *Node) EncodeJSON(w io.Writer) error {
	buf := &bytes.Buffer{}
	if err := n.encodeJSON(buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// JSON returns the node JSON encoding
func (n *Node) JSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := n.encodeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encodeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		return n.Root().encodeJSON(buf)
	case yaml.AliasNode:
		return (*Node)(n.Alias).encodeJSON(buf)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeJSONString(buf, n.Content[i].Value)
			buf.WriteString(": ")
			if err := (*Node)(n.Content[i+1]).encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := (*Node)(item).encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		switch (*yaml.Node)(n).ShortTag() {
		case "!!int", "!!float":
			if number, ok := formatNumber(n.Value, (*yaml.Node)(n).ShortTag() == "!!float"); ok {
				buf.WriteString(number)
			} else {
				writeJSONString(buf, n.Value)
			}
		case "!!bool":
			if parseBool(n.Value) {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case "!!null":
			buf.WriteString("null")
		default:
			writeJSONString(buf, n.Value)
		}
	default:
		return fmt.Errorf("unsupported node kind %v", n.Kind)
	}
	return nil
}

// formatNumber normalises a number scalar. Integers, including YAML base prefixed ones, are written in decimal.
// Floats use the shortest round-tripping digits with a fraction or an exponent below -4 or from 16 up.
func formatNumber(value string, float bool) (string, bool) {
	if !float {
		if i, ok := new(big.Int).SetString(value, 0); ok {
			return i.String(), true
		}
	}
	f, ok := parseJSONFloat(value)
	switch {
	case !ok:
		return "", false
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	}
	scientific := strconv.FormatFloat(f, 'e', -1, 64)
	_, exponentText, _ := strings.Cut(scientific, "e")
	if exponent, _ := strconv.Atoi(exponentText); f != 0 && (exponent < -4 || exponent >= 16) {
		return scientific, true
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text, true
}

func parseJSONFloat(value string) (float64, bool) {
	switch strings.ToLower(strings.TrimPrefix(value, "+")) {
	case ".inf", "inf", "infinity":
		return math.Inf(1), true
	case "-.inf", "-inf", "-infinity":
		return math.Inf(-1), true
	case ".nan", "nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, "_", ""), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func writeJSONString(buf *bytes.Buffer, text string) {
	buf.WriteByte('"')
	for _, r := range text {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r < 0x20 || (r > 0x7f && r <= 0xffff):
			writeUnicodeEscape(buf, r)
		case r > 0xffff:
			high, low := utf16.EncodeRune(r)
			writeUnicodeEscape(buf, high)
			writeUnicodeEscape(buf, low)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	buf.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		buf.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}
