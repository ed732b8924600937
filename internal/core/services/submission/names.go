package submission

import (
	"regexp"

	"gitlab.com/codbbit.net/internal/domain"
	"gitlab.com/codbbit.net/internal/static/errs"
)

var (
	classNameRe   = regexp.MustCompile(`(?i)\bclass\s+([A-Za-z_][A-Za-z0-9_]*)`)
	triggerNameRe = regexp.MustCompile(`(?i)\btrigger\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExtractArtifactName derives the remote artifact name from the first
// class or trigger declaration in the source text. Deriving the name
// lexically is the platform contract here: the deployed artifact must
// carry the declared name or the deploy is rejected.
func ExtractArtifactName(source string, kind domain.ArtifactKind) (string, error) {
	re := classNameRe
	if kind == domain.ArtifactApexTrigger {
		re = triggerNameRe
	}
	match := re.FindStringSubmatch(source)
	if match == nil {
		return "", errs.MissingArtifactName
	}
	return match[1], nil
}
