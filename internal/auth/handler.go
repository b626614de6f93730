package auth

import (
	"currencyconverter/internal/domain"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	MessageTokenGenerated     = "Token generated successfully"
	MessageInvalidCredentials = "Invalid username or password."
)

type AuthenticateRequest struct {
	UserName string `json:"userName" example:"admin"`
	Password string `json:"password" example:"Admin"`
}

type Handler struct {
	users  *Directory
	tokens *TokenService
}

func NewHandler(users *Directory, tokens *TokenService) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Authenticate godoc
// @Summary Issue an access token
// @Description Exchanges demo credentials for a bearer token
// @Tags User
// @Accept json
// @Produce json
// @Param request body AuthenticateRequest true "Credentials"
// @Success 200 {object} domain.Result[string]
// @Failure 400 {object} domain.Result[string]
// @Failure 401 {object} domain.Result[string]
// @Router /user/authenticate [post]
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	var req AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, domain.Fail[string]("invalid request body"))
		return
	}

	user, ok := h.users.Authenticate(strings.TrimSpace(req.UserName), req.Password)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, domain.Fail[string](MessageInvalidCredentials))
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		logrus.WithError(err).WithField("handler", "Authenticate").Error("token wasn't generated")
		writeEnvelope(w, http.StatusInternalServerError, domain.Fail[string]("failed to generate token"))
		return
	}

	res := domain.Ok(token)
	res.Message = MessageTokenGenerated
	writeEnvelope(w, http.StatusOK, res)
}
