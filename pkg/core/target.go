package core

import "strings"

// TargetSeparator joins an artifact id with its sub-fields in a modification target.
const TargetSeparator = ":"

// ComposeTarget builds a modification target such as "form-1:btnOk:Caption".
func ComposeTarget(id string, fields ...string) string {
	if len(fields) == 0 {
		return id
	}
	return id + TargetSeparator + strings.Join(fields, TargetSeparator)
}

// SplitTarget returns the artifact id and the sub-fields of a target.
func SplitTarget(target string) (id string, fields []string) {
	parts := strings.Split(target, TargetSeparator)
	return parts[0], parts[1:]
}
