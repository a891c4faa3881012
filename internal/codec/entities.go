package codec

import (
	"encoding/json"
	"time"

	"github.com/kevgathuku/docue/internal/core/domain"
)

// DecodeRole decodes a single role object.
func DecodeRole(data []byte) (domain.Role, error) {
	return decodeRole(data, "role")
}

// DecodeRoleList decodes an array of roles, failing on the first bad element.
func DecodeRoleList(data []byte) ([]domain.Role, error) {
	return decodeList(data, "roles", decodeRole)
}

func decodeRole(data []byte, path string) (domain.Role, error) {
	o, err := asObject(data, path)
	if err != nil {
		return domain.Role{}, err
	}
	var r domain.Role
	if r.ID, err = o.requireID(path); err != nil {
		return domain.Role{}, err
	}
	if r.Title, err = o.requireString(path, "title"); err != nil {
		return domain.Role{}, err
	}
	if r.AccessLevel, err = o.requireInt(path, "accessLevel"); err != nil {
		return domain.Role{}, err
	}
	return r, nil
}

// DecodeUser decodes a single user object.
func DecodeUser(data []byte) (domain.User, error) {
	return decodeUser(data, "user")
}

// DecodeUserList decodes an array of users, failing on the first bad element.
func DecodeUserList(data []byte) ([]domain.User, error) {
	return decodeList(data, "users", decodeUser)
}

func decodeUser(data []byte, path string) (domain.User, error) {
	o, err := asObject(data, path)
	if err != nil {
		return domain.User{}, err
	}
	var u domain.User
	if u.ID, err = o.requireID(path); err != nil {
		return domain.User{}, err
	}
	if u.Username, err = o.requireString(path, "username"); err != nil {
		return domain.User{}, err
	}
	if u.Email, err = o.requireString(path, "email"); err != nil {
		return domain.User{}, err
	}

	nameRaw, ok := o["name"]
	if !ok {
		return domain.User{}, errExpected(path+".name", "object")
	}
	name, err := asObject(nameRaw, path+".name")
	if err != nil {
		return domain.User{}, err
	}
	if u.Name.First, err = name.requireString(path+".name", "first"); err != nil {
		return domain.User{}, err
	}
	if u.Name.Last, err = name.requireString(path+".name", "last"); err != nil {
		return domain.User{}, err
	}

	roleRaw, ok := o["role"]
	if !ok {
		return domain.User{}, errExpected(path+".role", "object")
	}
	if u.Role, err = decodeRole(roleRaw, path+".role"); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DecodeDocument decodes a single document object. Content may be absent
// (list endpoints are allowed to omit it); every other field is required.
func DecodeDocument(data []byte) (domain.Document, error) {
	return decodeDocument(data, "document")
}

// DecodeDocumentList decodes an array of documents, failing on the first
// bad element.
func DecodeDocumentList(data []byte) ([]domain.Document, error) {
	return decodeList(data, "documents", decodeDocument)
}

func decodeDocument(data []byte, path string) (domain.Document, error) {
	o, err := asObject(data, path)
	if err != nil {
		return domain.Document{}, err
	}
	var d domain.Document
	if d.ID, err = o.requireID(path); err != nil {
		return domain.Document{}, err
	}
	if d.Title, err = o.requireString(path, "title"); err != nil {
		return domain.Document{}, err
	}
	if d.Content, err = o.optionalString(path, "content"); err != nil {
		return domain.Document{}, err
	}
	if d.OwnerID, err = o.requireString(path, "ownerId"); err != nil {
		return domain.Document{}, err
	}
	roleRaw, ok := o["role"]
	if !ok {
		return domain.Document{}, errExpected(path+".role", "object")
	}
	if d.Role, err = decodeRole(roleRaw, path+".role"); err != nil {
		return domain.Document{}, err
	}
	created, err := o.requireString(path, "dateCreated")
	if err != nil {
		return domain.Document{}, errExpected(path+".dateCreated", "timestamp")
	}
	if d.DateCreated, err = time.Parse(time.RFC3339, created); err != nil {
		return domain.Document{}, errExpected(path+".dateCreated", "timestamp")
	}
	return d, nil
}

// EncodeRole renders the canonical JSON for a role.
func EncodeRole(r domain.Role) ([]byte, error) { return json.Marshal(r) }

// EncodeUser renders the canonical JSON for a user.
func EncodeUser(u domain.User) ([]byte, error) { return json.Marshal(u) }

// EncodeDocument renders the canonical JSON for a document.
func EncodeDocument(d domain.Document) ([]byte, error) { return json.Marshal(d) }
