package services

import "sort"

// truthy mirrors how decoded JSON values behave in boolean position: nil,
// empty string, zero numbers and false are falsy, everything else is truthy.
// Update endpoints only type-check a field when its value is truthy, so a
// falsy value passes straight through to the database.
func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	case float64:
		return value != 0
	case int:
		return value != 0
	}
	return true
}

// invalidKeys returns the sorted keys of fields that are not in the allowed
// set.
func invalidKeys(fields map[string]interface{}, allowed map[string]bool) []string {
	var invalid []string
	for key := range fields {
		if !allowed[key] {
			invalid = append(invalid, key)
		}
	}
	sort.Strings(invalid)
	return invalid
}
