package model

import "fmt"

// UnresolvedRefErr is returned when a ref type cannot be mapped to an API collection
type UnresolvedRefErr struct {
	refType RefType
}

func (e UnresolvedRefErr) Error() string {
	if e.refType == RefTypeUnresolved {
		return "could not determine whether HEAD is a tag or a branch"
	}
	return fmt.Sprintf("unsupported reference type %q: expected %q or %q", string(e.refType), RefTypeTag, RefTypeBranch)
}
