package migrate

import "regexp"

// Variables is a flat mapping from variable name to value, consulted only
// during substitution.
type Variables map[string]string

var variableToken = regexp.MustCompile(`\$\{([^}]+)\}`)

// Substitute replaces every ${name} token in content with the variable's
// value. Unresolved tokens are left verbatim, never an error: scripts may
// legitimately contain ${...} text that is not a Causeway variable.
//
// Substitution affects only the executed content. The journal hash always
// derives from the original script content.
func Substitute(content string, vars Variables) string {
	if len(vars) == 0 {
		return content
	}
	return variableToken.ReplaceAllStringFunc(content, func(token string) string {
		name := token[2 : len(token)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}
