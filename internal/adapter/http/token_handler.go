package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MAKHFIRAT2408/food/configs"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHandler stands in for the external auth service: it mints a bearer
// token for a known user id. Real credential checks live outside this
// service; dev and test environments use this endpoint.
type TokenHandler struct {
	cfg   configs.Config
	users usecase.UserDirectory
}

func NewTokenHandler(cfg configs.Config, users usecase.UserDirectory) *TokenHandler {
	return &TokenHandler{cfg: cfg, users: users}
}

type tokenReq struct {
	UserID int64 `json:"userId" binding:"required"`
}

// POST /v1/token
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c, 2*time.Second)
	defer cancel()

	user, err := h.users.GetUser(ctx, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  h.cfg.Security.Issuer,
		"aud":  h.cfg.Security.Audience,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(h.cfg.Security.TTL).Unix(),
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int64(h.cfg.Security.TTL.Seconds()),
	})
}
