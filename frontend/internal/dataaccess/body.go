package dataaccess

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/localizer/dashboard/shared/domain"
)

// Part is one multipart field. File is nil for plain values.
type Part struct {
	Name  string
	Value string
	File  *File
}

// Body is a shaped request body: a JSON object when nothing binary is
// present, multipart parts otherwise.
type Body struct {
	JSON      map[string]any
	Parts     []Part
	multipart bool
}

func (b *Body) IsMultipart() bool {
	return b.multipart
}

type field struct {
	name  string
	value any
}

// Shape builds the body from the form values, or from data when it is not
// nil. Checked arrays and tracked images always come from the form.
func (f *Form) Shape(data map[string]any) *Body {
	fields := make([]field, 0, len(f.keys))
	if data != nil {
		for _, k := range slices.Sorted(maps.Keys(data)) {
			fields = append(fields, field{k, data[k]})
		}
	} else {
		for _, k := range f.keys {
			fields = append(fields, field{k, f.values[k]})
		}
	}

	if !f.hasBinary(fields) {
		obj := make(map[string]any, len(fields))
		for _, fl := range fields {
			if isNil(fl.value) {
				continue
			}
			if _, ok := fl.value.(*File); ok {
				continue
			}
			obj[fl.name] = fl.value
		}
		for _, k := range f.ckeys {
			obj[k] = slices.Clone(f.checked[k])
		}
		return &Body{JSON: obj}
	}

	var parts []Part
	for _, fl := range fields {
		parts = appendParts(parts, fl.name, fl.value)
	}
	for _, k := range f.ckeys {
		for _, v := range f.checked[k] {
			parts = append(parts, Part{Name: k, Value: v})
		}
	}
	for _, i := range slices.Sorted(maps.Keys(f.images)) {
		parts = append(parts, Part{Name: fmt.Sprintf("images[%d]", i), File: f.images[i]})
	}
	return &Body{Parts: parts, multipart: true}
}

func (f *Form) hasBinary(fields []field) bool {
	if len(f.images) > 0 {
		return true
	}
	for _, fl := range fields {
		if file, ok := fl.value.(*File); ok && file != nil {
			return true
		}
	}
	return false
}

func appendParts(parts []Part, name string, value any) []Part {
	if isNil(value) {
		return parts
	}
	if file, ok := value.(*File); ok {
		return append(parts, Part{Name: name, File: file})
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8:
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, Part{Name: name + "[]", Value: formatScalar(rv.Index(i).Interface())})
		}
		return parts
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		for _, k := range keys {
			nested := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
			if isNil(nested) {
				continue
			}
			nestedName := fmt.Sprintf("%s[%s]", name, k)
			if file, ok := nested.(*File); ok {
				parts = append(parts, Part{Name: nestedName, File: file})
				continue
			}
			parts = append(parts, Part{Name: nestedName, Value: formatScalar(nested)})
		}
		return parts
	}
	return append(parts, Part{Name: name, Value: formatScalar(value)})
}

// formatScalar renders booleans as 1/0 like checkbox values and lists as
// comma-separated values.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return boolString(t)
	case domain.Flag:
		return boolString(t.Bool())
	case []byte:
		return string(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err == nil {
			return string(b)
		}
	case fmt.Stringer:
		return t.String()
	}
	// Nested lists are flattened to comma-separated values.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = formatScalar(rv.Index(i).Interface())
		}
		return strings.Join(items, ",")
	}
	return fmt.Sprint(v)
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Encode returns the body reader and its content type. Multipart bodies
// are streamed through a pipe; the HTTP client closing the reader stops
// the writer.
func (b *Body) Encode() (io.Reader, string, error) {
	if !b.multipart {
		data, err := json.Marshal(b.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		for _, p := range b.Parts {
			if err := writePart(writer, p); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()
	return pr, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func writePart(w *multipart.Writer, p Part) error {
	if p.File == nil {
		return w.WriteField(p.Name, p.Value)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.Name), escapeQuotes(fileName(p.File))))
	contentType := p.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", p.Name, err)
	}
	if _, err := part.Write(p.File.Data); err != nil {
		return fmt.Errorf("failed to write part %s: %w", p.Name, err)
	}
	return nil
}

func fileName(f *File) string {
	if f.Name == "" {
		return "blob"
	}
	return f.Name
}
