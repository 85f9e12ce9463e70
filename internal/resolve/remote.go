// Package resolve reconciles a posting's remote claim with what its
// description actually asks for.
package resolve

import (
	"strings"

	"github.com/jimezsa/jobclip/internal/patterns"
)

// ConflictWarning is reported when the header says remote and the
// description says otherwise.
const ConflictWarning = "Job claims remote but mentions hybrid/on-site work"

// Resolution is the final remote decision.
type Resolution struct {
	IsRemote       bool
	Claimed        bool
	Contradictions []string
	Warning        string
}

// Remote applies the rule is_remote = claimed AND NOT contradicted. Any
// contradiction phrase in the description suppresses the flag; when the
// header claimed remote the conflict is reported in Warning.
func Remote(lib *patterns.Library, claimed bool, description string) Resolution {
	if lib == nil {
		lib = patterns.Default()
	}
	res := Resolution{Claimed: claimed}
	if strings.TrimSpace(description) != "" {
		res.Contradictions = lib.Contradictions(description)
	}
	res.IsRemote = claimed && len(res.Contradictions) == 0
	if claimed && len(res.Contradictions) > 0 {
		res.Warning = ConflictWarning
	}
	return res
}
