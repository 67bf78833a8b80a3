package domain

// Grant is a role-based permission attached to a caller, expressed
// per resource: view/edit crossed with self/any scope.
type Grant string

const (
	GrantAccountViewSelf Grant = "account:view-self"
	GrantAccountEditSelf Grant = "account:edit-self"
	GrantAccountViewAny  Grant = "account:view-any"
	GrantAccountEditAny  Grant = "account:edit-any"

	GrantOperationViewSelf Grant = "operation:view-self"
	GrantOperationEditSelf Grant = "operation:edit-self"
	GrantOperationViewAny  Grant = "operation:view-any"
	GrantOperationEditAny  Grant = "operation:edit-any"
)

var validGrants = map[Grant]bool{
	GrantAccountViewSelf:   true,
	GrantAccountEditSelf:   true,
	GrantAccountViewAny:    true,
	GrantAccountEditAny:    true,
	GrantOperationViewSelf: true,
	GrantOperationEditSelf: true,
	GrantOperationViewAny:  true,
	GrantOperationEditAny:  true,
}

// IsValid checks if the grant is a known grant.
func (g Grant) IsValid() bool {
	return validGrants[g]
}

// Identity is the acting caller: a user id plus the role grants
// attached to the session. It is resolved once at the request boundary
// and passed explicitly through every engine call; it never changes
// mid-request.
type Identity struct {
	UserID int64
	Grants []Grant
}

// Has reports whether the identity holds the given grant.
func (i Identity) Has(grant Grant) bool {
	for _, g := range i.Grants {
		if g == grant {
			return true
		}
	}

	return false
}

// CanViewAccount reports whether the identity may read an account
// owned by ownerID.
func (i Identity) CanViewAccount(ownerID int64) bool {
	if i.Has(GrantAccountViewAny) {
		return true
	}

	return i.UserID == ownerID && i.Has(GrantAccountViewSelf)
}

// CanEditAccount reports whether the identity may mutate an account
// owned by ownerID.
func (i Identity) CanEditAccount(ownerID int64) bool {
	if i.Has(GrantAccountEditAny) {
		return true
	}

	return i.UserID == ownerID && i.Has(GrantAccountEditSelf)
}

// CanViewOperation reports whether the identity may read operations
// belonging to ownerID.
func (i Identity) CanViewOperation(ownerID int64) bool {
	if i.Has(GrantOperationViewAny) {
		return true
	}

	return i.UserID == ownerID && i.Has(GrantOperationViewSelf)
}

// CanEditOperation reports whether the identity may mutate (process)
// operations on resources owned by ownerID.
func (i Identity) CanEditOperation(ownerID int64) bool {
	if i.Has(GrantOperationEditAny) {
		return true
	}

	return i.UserID == ownerID && i.Has(GrantOperationEditSelf)
}
