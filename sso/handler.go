package sso

import (
	"net/http"
	"os"
	"strconv"

	"calidad-be/util"

	"github.com/gin-gonic/gin"
)

type SSOHandler struct {
	service *SSOService
}

func NewSSOHandler(service *SSOService) *SSOHandler {
	return &SSOHandler{service: service}
}

func (h *SSOHandler) Login(c *gin.Context) {
	// Random state guards the callback against CSRF.
	state := util.RandString(16)
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := h.service.GetLoginURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *SSOHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie("oauth_state")
	if err != nil || state != cookieState {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid oauth state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		util.ErrorResponse(c, http.StatusBadRequest, "Code not found")
		return
	}

	response, err := h.service.HandleCallback(c.Request.Context(), code)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	domain := os.Getenv("COOKIE_DOMAIN")
	path := os.Getenv("COOKIE_PATH")
	if path == "" {
		path = "/"
	}

	secure, _ := strconv.ParseBool(os.Getenv("COOKIE_SECURE"))

	var sameSite http.SameSite
	switch os.Getenv("COOKIE_SAME_SITE") {
	case "Strict":
		sameSite = http.SameSiteStrictMode
	case "None":
		sameSite = http.SameSiteNoneMode
	default:
		sameSite = http.SameSiteLaxMode
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", response.AccessToken, 3600, path, domain, secure, true)
	c.SetCookie("refresh_token", response.RefreshToken, 604800, path, domain, secure, true)

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	c.Redirect(http.StatusFound, frontendURL+"/")
}
