// pkg/platform/utils.go
package platform

// firstSet returns the first non-empty value among the given variables
func firstSet(lookup LookupFunc, keys []string) string {
	for _, k := range keys {
		if v, ok := lookup(k); ok && v != "" {
			return v
		}
	}
	return ""
}
