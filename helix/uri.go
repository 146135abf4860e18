package helix

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode/utf8"
)

// BuildURI renders the absolute URI of req against baseURL.
//
// Query parameters are serialized sorted by key; the values of a repeated
// key keep their field order. The same request always yields the same URI.
func BuildURI(baseURL string, req Request) (string, error) {
	path := req.Path()

	if err := validateStruct(req); err != nil {
		return "", &InvalidURIError{Path: path, Reason: "invalid parameters: " + describeValidation(err)}
	}

	rendered, err := renderPath(path, pathParams(req))
	if err != nil {
		return "", err
	}

	query, err := encodeQuery(req)
	if err != nil {
		return "", &InvalidURIError{Path: path, Reason: "could not encode query", Err: err}
	}
	for key, values := range query {
		for _, v := range values {
			if err := checkComponent(v); err != nil {
				return "", &InvalidURIError{Path: path, Reason: fmt.Sprintf("query parameter %q %s", key, err)}
			}
		}
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	full := baseURL + rendered
	if encoded := query.Encode(); encoded != "" {
		full += "?" + encoded
	}

	parsed, err := url.Parse(full)
	if err != nil {
		return "", &InvalidURIError{Path: path, Reason: "malformed uri", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", &InvalidURIError{Path: path, Reason: "uri is not absolute"}
	}
	return parsed.String(), nil
}

func encodeQuery(req Request) (url.Values, error) {
	query := url.Values{}
	rv := reflect.ValueOf(req)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return query, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return query, nil
	}
	if err := queryEncoder.Encode(req, query); err != nil {
		return nil, err
	}

	// The encoder also emits untagged fields under their Go name and nil
	// pointers as "null"; only set, tagged fields are parameters.
	keys := make(map[string]bool)
	queryKeys(rv, keys)
	for key, values := range query {
		if !keys[key] {
			delete(query, key)
			continue
		}
		// Unset fields encode as empty strings; Helix treats `key=` as a value.
		kept := values[:0]
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			delete(query, key)
			continue
		}
		query[key] = kept
	}
	return query, nil
}

// queryKeys collects the names of exported `query` tagged fields holding a
// value, descending into embedded structs.
func queryKeys(rv reflect.Value, keys map[string]bool) {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		fv := rv.Field(i)
		if field.Anonymous {
			for fv.Kind() == reflect.Pointer && !fv.IsNil() {
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				queryKeys(fv, keys)
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get(queryTag), ",")
		if name == "" || name == "-" {
			continue
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		keys[name] = true
	}
}

// pathParams collects the fields tagged `path:"name"`.
func pathParams(req Request) map[string]string {
	rv := reflect.ValueOf(req)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	params := make(map[string]string)
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		name := field.Tag.Get(pathTag)
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.String {
			params[name] = fv.String()
		} else {
			params[name] = fmt.Sprint(fv.Interface())
		}
	}
	return params
}

// renderPath substitutes {name} segments and escapes every segment.
func renderPath(template string, params map[string]string) (string, error) {
	template = strings.Trim(template, "/")
	if template == "" {
		return "", &InvalidURIError{Path: template, Reason: "empty path"}
	}

	segments := strings.Split(template, "/")
	for i, seg := range segments {
		if seg == "" {
			return "", &InvalidURIError{Path: template, Reason: "empty path segment"}
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := seg[1 : len(seg)-1]
			value, ok := params[name]
			if !ok || value == "" {
				return "", &InvalidURIError{Path: template, Reason: fmt.Sprintf("missing path parameter %q", name)}
			}
			seg = value
		} else if strings.ContainsAny(seg, "{}") {
			return "", &InvalidURIError{Path: template, Reason: fmt.Sprintf("malformed path segment %q", seg)}
		}
		if err := checkComponent(seg); err != nil {
			return "", &InvalidURIError{Path: template, Reason: fmt.Sprintf("path segment %q %s", seg, err)}
		}
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/"), nil
}

// checkComponent rejects values that cannot be carried in a URI component.
func checkComponent(v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("is not valid UTF-8")
	}
	for _, r := range v {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("contains control character %U", r)
		}
	}
	return nil
}
