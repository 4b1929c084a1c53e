package jisp

import (
	"fmt"
	"strings"
)

// location is the result of resolving a JSON Pointer: the value itself plus
// the parent container and the key or index addressing it, so callers can
// replace the value through the parent. A nil parent addresses the root.
type location struct {
	value  any
	parent any
	key    string
	index  int
}

type pointerNotFoundError struct {
	path, token string
}

func (err *pointerNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s (at %q)", err.path, err.token)
}

type pointerTypeError struct {
	path, token string
	v           any
}

func (err *pointerTypeError) Error() string {
	return fmt.Sprintf("cannot index %s with %q in path %s", typePreview(err.v), err.token, err.path)
}

type pointerRangeError struct {
	path  string
	index int
	size  int
}

func (err *pointerRangeError) Error() string {
	return fmt.Sprintf("index %d out of bounds (array size %d) in path %s", err.index, err.size, err.path)
}

type pointerInvalidError struct {
	path, token string
}

func (err *pointerInvalidError) Error() string {
	return fmt.Sprintf("invalid path token %q in path %s", err.token, err.path)
}

// resolvePointer looks up an RFC 6901 pointer in root. "/" addresses the
// root itself; every other pointer must start with "/".
func resolvePointer(root any, path string) (*location, error) {
	if path == "/" {
		return &location{value: root}, nil
	}
	if path == "" || path[0] != '/' {
		return nil, &pointerInvalidError{path, path}
	}
	loc := &location{value: root}
	for _, token := range strings.Split(path[1:], "/") {
		token, err := decodePointerToken(path, token)
		if err != nil {
			return nil, err
		}
		switch v := loc.value.(type) {
		case map[string]any:
			w, ok := v[token]
			if !ok {
				return nil, &pointerNotFoundError{path, token}
			}
			loc = &location{value: w, parent: v, key: token}
		case []any:
			if token == "-" {
				return nil, &pointerNotFoundError{path, token}
			}
			i, err := parseArrayIndex(path, token)
			if err != nil {
				return nil, err
			}
			if i >= len(v) {
				return nil, &pointerRangeError{path, i, len(v)}
			}
			loc = &location{value: v[i], parent: v, index: i}
		default:
			return nil, &pointerTypeError{path, token, loc.value}
		}
	}
	return loc, nil
}

func decodePointerToken(path, token string) (string, error) {
	if !strings.ContainsRune(token, '~') {
		return token, nil
	}
	var sb strings.Builder
	for i := 0; i < len(token); i++ {
		if token[i] != '~' {
			sb.WriteByte(token[i])
			continue
		}
		if i++; i >= len(token) {
			return "", &pointerInvalidError{path, token}
		}
		switch token[i] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", &pointerInvalidError{path, token}
		}
	}
	return sb.String(), nil
}

func parseArrayIndex(path, token string) (int, error) {
	if token == "" || len(token) > 1 && token[0] == '0' {
		return 0, &pointerInvalidError{path, token}
	}
	var i int
	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, &pointerInvalidError{path, token}
		}
		i = i*10 + int(c-'0')
	}
	return i, nil
}

// encodePointerKey builds the pointer addressing a single root key, escaping
// "~" and "/" per RFC 6901. Used by the residual logger.
func encodePointerKey(key string) string {
	if strings.ContainsAny(key, "~/") {
		key = strings.ReplaceAll(key, "~", "~0")
		key = strings.ReplaceAll(key, "/", "~1")
	}
	return "/" + key
}
