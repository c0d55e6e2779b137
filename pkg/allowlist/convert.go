package allowlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/valyala/fastjson"
)

// ParseJSON parses raw JSON into a Value. Object member order follows the
// document; a repeated key keeps its first position and its last value.
func ParseJSON(data []byte) (Value, error) {
	var p fastjson.Parser
	doc, err := p.ParseBytes(data)
	if err != nil {
		return Value{}, errors.Join(ErrInvalidJSON, err)
	}
	return fromFastJSON(doc)
}

func fromFastJSON(v *fastjson.Value) (Value, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return Null(), nil
	case fastjson.TypeTrue:
		return Bool(true), nil
	case fastjson.TypeFalse:
		return Bool(false), nil
	case fastjson.TypeNumber:
		n, err := v.Float64()
		if err != nil {
			return Value{}, errors.Join(ErrInvalidJSON, err)
		}
		return Number(n), nil
	case fastjson.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return Value{}, errors.Join(ErrInvalidJSON, err)
		}
		return String(string(sb)), nil
	case fastjson.TypeArray:
		raw, _ := v.Array()
		items := make([]Value, 0, len(raw))
		for _, item := range raw {
			iv, err := fromFastJSON(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv)
		}
		return Value{kind: KindArray, items: items}, nil
	case fastjson.TypeObject:
		obj, _ := v.Object()
		fields := make([]Field, 0, obj.Len())
		var firstErr error
		obj.Visit(func(key []byte, member *fastjson.Value) {
			if firstErr != nil {
				return
			}
			mv, err := fromFastJSON(member)
			if err != nil {
				firstErr = err
				return
			}
			fields = append(fields, Field{Key: string(key), Value: mv})
		})
		if firstErr != nil {
			return Value{}, firstErr
		}
		return Object(fields...), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected type %s", ErrInvalidJSON, v.Type())
	}
}

// FromAny converts plain Go data into a Value. Maps are read in sorted key
// order; time.Time becomes an RFC 3339 string. Any other type is
// round-tripped through encoding/json.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return finiteNumber(float64(t))
	case float64:
		return finiteNumber(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, errors.Join(ErrUnsupportedType, err)
		}
		return Number(n), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, items: items}, nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		fields := make([]Field, 0, len(t))
		for _, k := range sortedKeys(t) {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: k, Value: v})
		}
		return Value{kind: KindObject, fields: fields}, nil
	case map[string]string:
		fields := make([]Field, 0, len(t))
		for _, k := range sortedKeys(t) {
			fields = append(fields, Field{Key: k, Value: String(t[k])})
		}
		return Value{kind: KindObject, fields: fields}, nil
	}

	raw, err := json.Marshal(x)
	if err != nil {
		return Value{}, errors.Join(ErrUnsupportedType, err)
	}
	return ParseJSON(raw)
}

func finiteNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: non-finite number", ErrUnsupportedType)
	}
	return Number(f), nil
}

// MarshalJSON encodes the value with object members in order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the compact JSON form.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "null"
	}
	return string(b)
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return fmt.Errorf("%w: non-finite number", ErrUnsupportedType)
		}
		buf.Write(strconv.AppendFloat(nil, v.n, 'f', -1, 64))
	case KindString:
		return encodeString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
