package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/ik-hxr/cms-backend/internal/config"
	"github.com/ik-hxr/cms-backend/internal/messages"
)

// unknownKey is one hxr.toml key the schema does not recognize.
type unknownKey struct {
	Path       string
	Allowed    []string
	Suggestion string
}

// keySchema mirrors the toml tags of config.Config.
type keySchema struct {
	children map[string]*keySchema
	// entries is set for maps keyed by user-chosen names ([environments.<name>]).
	entries *keySchema
	items   *keySchema
	open    bool
}

var (
	schemaOnce sync.Once
	schemaRoot *keySchema
)

// unknownKeyRecommendation renders the multi-line doctor hint for unknown keys.
func unknownKeyRecommendation(configPath string, keys []unknownKey) string {
	if len(keys) == 0 {
		return ""
	}
	lines := []string{
		fmt.Sprintf(messages.DoctorUnknownKeysEditFmt, configPath),
		"",
		messages.DoctorUnknownKeysHeader,
	}
	for _, key := range keys {
		line := "- " + key.Path
		if len(key.Allowed) > 0 {
			line += fmt.Sprintf(" (allowed keys: %s)", strings.Join(key.Allowed, ", "))
		}
		if key.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %s?)", key.Suggestion)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// findUnknownKeys reads configPath and reports every key outside the schema.
func findUnknownKeys(configPath string) ([]unknownKey, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var keys []unknownKey
	walkUnknown(raw, configSchema(), "", &keys)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Path < keys[j].Path
	})
	return keys, nil
}

func configSchema() *keySchema {
	schemaOnce.Do(func() {
		schemaRoot = buildSchema(reflect.TypeOf(config.Config{}))
	})
	return schemaRoot
}

func buildSchema(t reflect.Type) *keySchema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		node := &keySchema{children: make(map[string]*keySchema)}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			key, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
			if key == "" || key == "-" {
				continue
			}
			node.children[key] = buildSchema(field.Type)
		}
		return node
	case reflect.Map:
		return &keySchema{open: true, entries: buildSchema(t.Elem())}
	case reflect.Slice, reflect.Array:
		return &keySchema{items: buildSchema(t.Elem())}
	default:
		return &keySchema{}
	}
}

func walkUnknown(raw any, schema *keySchema, path string, keys *[]unknownKey) {
	if schema == nil || raw == nil {
		return
	}
	switch typed := raw.(type) {
	case map[string]any:
		if schema.open {
			for key, value := range typed {
				walkUnknown(value, schema.entries, joinConfigPath(path, key), keys)
			}
			return
		}
		if schema.children == nil {
			return
		}
		for key, value := range typed {
			child, ok := schema.children[key]
			if !ok {
				*keys = append(*keys, unknownKey{
					Path:       joinConfigPath(path, key),
					Allowed:    schema.allowedKeys(),
					Suggestion: suggestKeyRename(key, schema, path),
				})
				continue
			}
			walkUnknown(value, child, joinConfigPath(path, key), keys)
		}
	case []any:
		if schema.items == nil {
			return
		}
		for i, item := range typed {
			walkUnknown(item, schema.items, fmt.Sprintf("%s[%d]", path, i), keys)
		}
	}
}

func (s *keySchema) allowedKeys() []string {
	keys := make([]string, 0, len(s.children))
	for key := range s.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinConfigPath(path string, key string) string {
	segment := key
	if key == "" || strings.IndexFunc(key, func(r rune) bool {
		return r != '_' && r != '-' &&
			(r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9')
	}) != -1 {
		segment = fmt.Sprintf("[%q]", key)
	}
	switch {
	case path == "":
		return segment
	case strings.HasPrefix(segment, "["):
		return path + segment
	default:
		return path + "." + segment
	}
}

// suggestKeyRename maps an unknown key to a known sibling differing only in
// case or in dashes versus underscores.
func suggestKeyRename(key string, schema *keySchema, path string) string {
	normalized := strings.ReplaceAll(strings.ToLower(key), "-", "_")
	for _, allowed := range schema.allowedKeys() {
		if strings.EqualFold(key, allowed) || normalized == allowed {
			return joinConfigPath(path, allowed)
		}
	}
	return ""
}
