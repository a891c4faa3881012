package stubserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kevgathuku/docue/internal/core/domain"
	"github.com/kevgathuku/docue/internal/core/ports"
)

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type sessionResponse struct {
	User domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// AuthHandler serves login, signup and the session probe.
type AuthHandler struct {
	storage *Storage
	secret  string
	ttl     time.Duration
}

func (h *AuthHandler) mint(userID string) (string, error) {
	return mintToken(h.secret, userID, h.ttl)
}

// Login authenticates a user and returns a token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ports.Credentials  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.Credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.storage.Authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}
	token, err := h.mint(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Signup creates an account with the default viewer role and authenticates
// it directly.
//
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ports.SignupInput  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.storage.CreateUser(req, h.storage.DefaultRole())
	if err != nil {
		return err
	}
	token, err := h.mint(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Session returns the user behind a valid token.
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{User: ctxUser(c)})
}

// --- Users ---

// UserHandler serves user listing and administration.
type UserHandler struct {
	storage *Storage
}

func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.storage.ListUsers())
}

// Update applies a partial user update. Owners may edit themselves; only an
// admin may edit someone else or change a role.
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	caller := ctxUser(c)
	if caller.ID != id && !domain.CanAdminister(caller) {
		return domain.ErrForbidden
	}

	var req ports.UserPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.storage.GetUser(id)
	if err != nil {
		return err
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !domain.CanAdminister(caller) {
			return domain.ErrForbidden
		}
		user.Role = *req.Role
	}

	updated, err := h.storage.UpdateUser(id, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.storage.DeleteUser(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// --- Roles ---

// RoleHandler serves role CRUD. Mutations are admin-only via middleware.
type RoleHandler struct {
	storage *Storage
}

func (h *RoleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.storage.ListRoles())
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req ports.RolePayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, h.storage.CreateRole(req))
}

func (h *RoleHandler) Update(c echo.Context) error {
	var req ports.RolePayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	role, err := h.storage.UpdateRole(c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.storage.DeleteRole(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role deleted"})
}

// --- Documents ---

// DocumentHandler serves document CRUD with access-level gating.
type DocumentHandler struct {
	storage *Storage
}

// List returns the documents visible to the caller.
//
// @Summary      List visible documents
// @Tags         documents
// @Produce      json
// @Success      200  {array}  domain.Document
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.storage.ListDocuments(ctxUser(c)))
}

func (h *DocumentHandler) Create(c echo.Context) error {
	var req ports.DocumentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc := h.storage.CreateDocument(ctxUser(c), req)
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.storage.GetDocument(c.Param("id"))
	if err != nil {
		return err
	}
	if !domain.CanRead(ctxUser(c), doc) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Update(c echo.Context) error {
	doc, err := h.storage.GetDocument(c.Param("id"))
	if err != nil {
		return err
	}
	if !domain.CanEdit(ctxUser(c), doc) {
		return domain.ErrForbidden
	}

	var req ports.DocumentPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.storage.UpdateDocument(doc.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	doc, err := h.storage.GetDocument(c.Param("id"))
	if err != nil {
		return err
	}
	if !domain.CanDelete(ctxUser(c), doc) {
		return domain.ErrForbidden
	}
	if err := h.storage.DeleteDocument(doc.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "document deleted"})
}
