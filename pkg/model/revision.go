package model

import "fmt"

// RefType classifies a git reference.
type RefType string

const (
	// RefTypeTag is an immutable named snapshot
	RefTypeTag RefType = "tag"

	// RefTypeBranch is a movable named pointer
	RefTypeBranch RefType = "branch"

	// RefTypeUnresolved is used when neither a tag nor a branch could be determined
	RefTypeUnresolved RefType = ""
)

// Plural returns the collection name used by the sneakpeek API for this ref type.
func (t RefType) Plural() (string, error) {
	switch t {
	case RefTypeBranch:
		return "branches", nil
	case RefTypeTag:
		return "tags", nil
	default:
		return "", UnresolvedRefErr{refType: t}
	}
}

// RevisionInfo describes the commit being uploaded and the reference pointing at it.
type RevisionInfo struct {
	SHA     string  `json:"sha" yaml:"sha"`
	RefType RefType `json:"reftype,omitempty" yaml:"reftype,omitempty"`
	Ref     string  `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Resolved tells if the ref type is one the API knows about
func (r RevisionInfo) Resolved() bool {
	return r.RefType == RefTypeTag || r.RefType == RefTypeBranch
}

func (r RevisionInfo) String() string {
	if !r.Resolved() {
		return fmt.Sprintf("unresolved ref @ %s", r.SHA)
	}
	return fmt.Sprintf("%s %s @ %s", r.RefType, r.Ref, r.SHA)
}
