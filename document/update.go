package document

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	auditreport "github.com/kakehashi-asia/auditreport"
)

// Update replaces the value at path and returns the new snapshot.
//
// A path is a dot-separated list of JSON field names. Members of
// identity-bearing lists are selected by identifier in brackets
// ("assets[NAS-01].status", "invoice.items[2].quantity"); members of the
// fixed numeric series are selected by zero-based index
// ("threatStats[1].count", "resourceStats.cpu[3].value"). A path ending on a
// struct accepts a map and updates several fields at once.
//
// Values are converted weakly: "12", 12 and 12.0 all set an integer field.
// Identifiers, axis labels and whole lists cannot be replaced. On any error
// d is returned unchanged.
func Update(d *Document, path string, value any) (*Document, error) {
	const op = "Update"

	segs, err := parsePath(path)
	if err != nil {
		return d, auditreport.NewError(op, err)
	}
	if value == nil {
		return d, auditreport.Errorf(op, auditreport.ErrInvalidValue, "%s: nil value", path)
	}

	next := d.Clone()
	target, err := resolve(reflect.ValueOf(next).Elem(), segs, true)
	if err != nil {
		return d, auditreport.NewError(op, fmt.Errorf("%s: %w", path, err))
	}

	switch target.Kind() {
	case reflect.Slice:
		return d, auditreport.Errorf(op, auditreport.ErrInvalidValue,
			"%s is a list; use Insert, RemoveAt or a member path", path)
	case reflect.Struct:
		if err := checkWritableKeys(target.Type(), value); err != nil {
			return d, auditreport.NewError(op, fmt.Errorf("%s: %w", path, err))
		}
	}

	var protected []reflect.Value
	if target.Kind() == reflect.Struct {
		protected = protectedFields(target)
	}
	if err := decodeWeak(value, target.Addr().Interface()); err != nil {
		return d, auditreport.Errorf(op, auditreport.ErrInvalidValue, "%s: %v", path, err)
	}
	if target.Kind() == reflect.Struct {
		if name, changed := changedField(target, protected); changed {
			return d, auditreport.Errorf(op, auditreport.ErrInvalidValue, "%s: %q cannot be replaced", path, name)
		}
	}
	if err := next.Validate(); err != nil {
		return d, auditreport.NewError(op, err)
	}
	return next, nil
}

// Get returns a copy of the value at path, using the same addressing as
// Update. Whole lists may be read.
func Get(d *Document, path string) (any, error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, auditreport.NewError("Get", err)
	}
	v, err := resolve(reflect.ValueOf(d.Clone()).Elem(), segs, false)
	if err != nil {
		return nil, auditreport.NewError("Get", fmt.Errorf("%s: %w", path, err))
	}
	return v.Interface(), nil
}

type segment struct {
	name   string
	key    string
	hasKey bool
}

func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", auditreport.ErrUnknownField)
	}

	var segs []segment
	rest := path
	for rest != "" {
		var seg segment
		end := strings.IndexAny(rest, ".[")
		if end < 0 {
			end = len(rest)
		}
		seg.name = rest[:end]
		rest = rest[end:]

		if strings.HasPrefix(rest, "[") {
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return nil, fmt.Errorf("%w: unterminated bracket in %q", auditreport.ErrUnknownField, path)
			}
			seg.key = rest[1:closing]
			seg.hasKey = true
			rest = rest[closing+1:]
		}
		if seg.name == "" {
			return nil, fmt.Errorf("%w: malformed path %q", auditreport.ErrUnknownField, path)
		}
		segs = append(segs, seg)

		if rest == "" {
			break
		}
		if rest[0] != '.' || len(rest) == 1 {
			return nil, fmt.Errorf("%w: malformed path %q", auditreport.ErrUnknownField, path)
		}
		rest = rest[1:]
	}
	return segs, nil
}

func resolve(v reflect.Value, segs []segment, write bool) (reflect.Value, error) {
	for _, seg := range segs {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %q has no fields", auditreport.ErrUnknownField, seg.name)
		}
		field, sf, ok := fieldByJSONName(v, seg.name)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %q", auditreport.ErrUnknownField, seg.name)
		}
		if write && isReadOnly(sf) {
			return reflect.Value{}, fmt.Errorf("%w: %q is read-only", auditreport.ErrInvalidValue, seg.name)
		}
		v = field

		if !seg.hasKey {
			continue
		}
		if v.Kind() != reflect.Slice {
			return reflect.Value{}, fmt.Errorf("%w: %q is not a list", auditreport.ErrUnknownField, seg.name)
		}
		i, err := memberIndex(v, seg)
		if err != nil {
			return reflect.Value{}, err
		}
		v = v.Index(i)
	}
	return v, nil
}

func memberIndex(list reflect.Value, seg segment) (int, error) {
	if idField, ok := idFieldIndex(list.Type().Elem()); ok {
		for i := 0; i < list.Len(); i++ {
			if list.Index(i).Field(idField).String() == seg.key {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %s[%s]", auditreport.ErrNotFound, seg.name, seg.key)
	}

	i, err := strconv.Atoi(seg.key)
	if err != nil {
		return 0, fmt.Errorf("%w: %s[%s] is not an index", auditreport.ErrIndexOutOfRange, seg.name, seg.key)
	}
	if i < 0 || i >= list.Len() {
		return 0, fmt.Errorf("%w: %s[%d] (length %d)", auditreport.ErrIndexOutOfRange, seg.name, i, list.Len())
	}
	return i, nil
}

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, reflect.StructField, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if jsonName(sf) == name {
			return v.Field(i), sf, true
		}
	}
	return reflect.Value{}, reflect.StructField{}, false
}

func idFieldIndex(t reflect.Type) (int, bool) {
	if t.Kind() != reflect.Struct {
		return 0, false
	}
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) == "id" {
			return i, true
		}
	}
	return 0, false
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	return name
}

func isReadOnly(sf reflect.StructField) bool {
	return jsonName(sf) == "id" || sf.Tag.Get("readonly") == "true"
}

// checkWritableKeys rejects map values that would overwrite an identifier,
// a read-only field or a whole list of a struct target.
func checkWritableKeys(t reflect.Type, value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if _, present := m[jsonName(sf)]; !present {
			continue
		}
		if isReadOnly(sf) || sf.Type.Kind() == reflect.Slice {
			return fmt.Errorf("%w: %q cannot be replaced", auditreport.ErrInvalidValue, jsonName(sf))
		}
	}
	return nil
}

// protectedFields copies the identifier, read-only and list fields of the
// struct v, in field order.
func protectedFields(v reflect.Value) []reflect.Value {
	var out []reflect.Value
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if isReadOnly(sf) || sf.Type.Kind() == reflect.Slice {
			c := reflect.New(sf.Type).Elem()
			c.Set(v.Field(i))
			out = append(out, c)
		}
	}
	return out
}

// changedField reports the first protected field of v that no longer
// matches its copy in before. Typed struct values bypass checkWritableKeys
// and land here.
func changedField(v reflect.Value, before []reflect.Value) (string, bool) {
	t := v.Type()
	n := 0
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !isReadOnly(sf) && sf.Type.Kind() != reflect.Slice {
			continue
		}
		if !reflect.DeepEqual(before[n].Interface(), v.Field(i).Interface()) {
			return jsonName(sf), true
		}
		n++
	}
	return "", false
}

func decodeWeak(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       rejectFractionalInts,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// rejectFractionalInts stops the weak decoder from silently truncating 1.5
// into an integer field.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", f)
		}
	}
	return data, nil
}
