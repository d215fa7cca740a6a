// Package render provides strict command template rendering.
//
// Templates reference values as {namespace.attr}, e.g.
//
//	prog.py --name {project.name} --input {sample.data_path}
//
// Rendering is strict: every referenced binding must be present in the
// provided namespaces, and all missing references are reported together.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

// refRegex matches {namespace.attr} tokens in command templates.
var refRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\.([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Namespaces is the rendering context, keyed by namespace then attribute.
// Conventional namespaces are looper, project, sample and pipeline.
type Namespaces map[string]map[string]any

// Command renders a command template in the given namespaces.
// String slice values are joined with single spaces; any other value is
// formatted with fmt.Sprint. If any referenced binding is missing, a
// *MissingError naming every missing reference is returned.
func Command(template string, ns Namespaces) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	rendered := refRegex.ReplaceAllStringFunc(template, func(token string) string {
		m := refRegex.FindStringSubmatch(token)
		space, attr := m[1], m[2]

		attrs, ok := ns[space]
		if ok {
			var val any
			if val, ok = attrs[attr]; ok {
				return finalize(val)
			}
		}
		ref := space + "." + attr
		if !seen[ref] {
			seen[ref] = true
			missing = append(missing, ref)
		}
		return token
	})

	if len(missing) > 0 {
		return "", &MissingError{Refs: missing}
	}
	return rendered, nil
}

// ExtractRefs returns the unique {namespace.attr} references in a template,
// in order of first appearance.
func ExtractRefs(template string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range refRegex.FindAllStringSubmatch(template, -1) {
		ref := m[1] + "." + m[2]
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// finalize converts a bound value to its command-line form.
func finalize(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}

// MissingError is returned when a template references bindings absent from
// the namespaces.
type MissingError struct {
	Refs []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing template bindings: %s", strings.Join(e.Refs, ", "))
}

// Missing returns the missing reference names.
func (e *MissingError) Missing() []string { return e.Refs }
