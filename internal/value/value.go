// internal/value/value.go
package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags the backend-neutral type of a cell value
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBlob
	KindBool
	KindTime
)

// Value is a tagged cell value shared by every backend. The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
	t    time.Time
	bo   bool
}

// Null is the NULL value
var Null = Value{kind: KindNull}

func Int(v int64) Value      { return Value{kind: KindInt, i: v} }
func Float(v float64) Value  { return Value{kind: KindFloat, f: v} }
func Text(v string) Value    { return Value{kind: KindText, s: v} }
func Blob(v []byte) Value    { return Value{kind: KindBlob, b: v} }
func Bool(v bool) Value      { return Value{kind: KindBool, bo: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// FromNative converts a driver-native scan result into a Value. Unknown
// native types fall back to their textual form so reads never fail on an
// unfamiliar column type.
func FromNative(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null
	case int64:
		return Int(val)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case float64:
		return Float(val)
	case float32:
		return Float(float64(val))
	case bool:
		return Bool(val)
	case time.Time:
		return Time(val)
	case string:
		return Text(val)
	case []byte:
		// MySQL reports most text columns as []byte; keep printable
		// payloads as text and only raw binary as a blob.
		if isPrintable(val) {
			return Text(string(val))
		}
		return Blob(val)
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

// Kind returns the tagged kind
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is NULL
func (v Value) IsNull() bool { return v.kind == KindNull }

// Native returns the driver-bindable form. NULL binds as nil, never as the
// text "NULL".
func (v Value) Native() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBlob:
		return v.b
	case KindBool:
		return v.bo
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// String returns the display form
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindBlob:
		return blobPreview(v.b)
	case KindBool:
		if v.bo {
			return "true"
		}
		return "false"
	case KindTime:
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Equal reports value equality across kind and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBlob:
		return string(v.b) == string(o.b)
	case KindBool:
		return v.bo == o.bo
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return false
	}
}

// ParseInput converts user-typed cell text back into a Value. The hint is
// the kind of the value being replaced so edits keep the column's shape;
// text that does not parse under the hint is kept as text and left for the
// backend to accept or reject.
func ParseInput(s string, hint Kind) Value {
	if strings.EqualFold(strings.TrimSpace(s), "NULL") {
		return Null
	}
	switch hint {
	case KindInt:
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return Int(n)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Float(f)
		}
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return Bool(true)
		case "false", "0":
			return Bool(false)
		}
	case KindNull:
		// Replacing a NULL: guess numeric before falling back to text
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return Int(n)
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Float(f)
		}
	}
	return Text(s)
}

func blobPreview(b []byte) string {
	const max = 16
	if len(b) <= max {
		return fmt.Sprintf("0x%x", b)
	}
	return fmt.Sprintf("0x%x... (%d bytes)", b[:max], len(b))
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x09 || (c > 0x0d && c < 0x20) {
			return false
		}
	}
	return true
}
