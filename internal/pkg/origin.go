package pkg

import "strings"

const AnyOrigin = "*"

// NewOriginValidator reports whether a browser origin is in allowed. "*" allows every origin.
func NewOriginValidator(allowed []string) func(origin string) bool {
	origins := make(map[string]struct{}, len(allowed))
	anyOrigin := false

	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == AnyOrigin {
			anyOrigin = true
			continue
		}
		origins[strings.ToLower(origin)] = struct{}{}
	}

	return func(origin string) bool {
		if origin == "" {
			return false
		}
		if anyOrigin {
			return true
		}

		_, ok := origins[strings.ToLower(origin)]
		return ok
	}
}
