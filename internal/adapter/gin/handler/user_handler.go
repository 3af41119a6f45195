package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-rest-service/internal/usecase/user"
	pkgerrors "user-rest-service/pkg/errors"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc     user.Usecase
	log    *zap.Logger
	strict bool // report missing users as 404 instead of the compatibility 200
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, strict bool, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		log:    log,
		strict: strict,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Both fields are optional strings; absent fields default to empty. A field of
// any other JSON type fails decoding and is reported as invalid JSON.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Always a JSON array, even when empty
	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	respondData(c, http.StatusOK, users)
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user ID", zap.String("id", idStr), zap.Error(err))
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		var nfe *pkgerrors.NotFoundError
		if errors.As(err, &nfe) {
			// A miss is a business-logic failure: error envelope on 200 by
			// contract, a real 404 only in strict mode.
			status := http.StatusOK
			if h.strict {
				status = nfe.HTTPStatus()
			}
			respondError(c, status, nfe.Error())
			return
		}
		h.log.Error("GetUser failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, UserResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user body", zap.Error(err))
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.log.Error("CreateUser failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusCreated, UserResponse{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: resp.User.Email,
	})
}
