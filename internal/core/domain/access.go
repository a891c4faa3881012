package domain

// The access gate is advisory on the client: views consult it before
// rendering controls, but the server remains the source of truth and may
// still reject.

// CanRead reports whether the user may read the document: their access
// level meets the document's, or they own it.
func CanRead(user User, doc Document) bool {
	return user.Role.AccessLevel >= doc.Role.AccessLevel || user.ID == doc.OwnerID
}

// CanEdit reports whether the user may edit the document: owner or admin.
func CanEdit(user User, doc Document) bool {
	return user.ID == doc.OwnerID || user.Role.AccessLevel == LevelAdmin
}

// CanDelete follows the same rule as CanEdit.
func CanDelete(user User, doc Document) bool {
	return CanEdit(user, doc)
}

// CanAdminister reports whether the user may manage roles and other users.
func CanAdminister(user User) bool {
	return user.Role.AccessLevel == LevelAdmin
}
