package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/4lexxe/backend-FJV/config"
	"github.com/4lexxe/backend-FJV/internal/domain/usuarios"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /api/auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if config.GOOGLE_CLIENT_ID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "0", "msg": "Google OAuth no configurado"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "No se pudo generar el state"})
		return
	}

	// state en cookie HttpOnly, 5 minutos
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /api/auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "invalid oauth state"})
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": err.Error()})
		return
	}

	usuario, err := h.findOrCreateGoogleUser(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "No se pudo crear el usuario"})
		return
	}

	tokenString, err := issueJWT(usuario)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "No se pudo generar el token"})
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"status": "1", "token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

func (h *Handler) findOrCreateGoogleUser(gc *googleIDClaims) (*usuarios.Usuario, error) {
	var usuario usuarios.Usuario

	// 1) por google_id
	if err := h.DB.Preload("Rol").Where("google_id = ?", gc.Sub).First(&usuario).Error; err == nil {
		return &usuario, nil
	}

	// 2) por email, vinculando la cuenta de Google si todavía no lo está
	if err := h.DB.Preload("Rol").Where("email = ?", gc.Email).First(&usuario).Error; err == nil {
		if usuario.GoogleID == nil {
			sub := gc.Sub
			provider := "google"
			usuario.GoogleID = &sub
			usuario.ProviderType = &provider
			usuario.EmailVerificado = true
			if err := h.DB.Save(&usuario).Error; err != nil {
				return nil, err
			}
		}
		return &usuario, nil
	}

	// 3) cuenta nueva con rol usuario_social
	var rol usuarios.Rol
	if err := h.DB.Where("nombre = ?", usuarios.RolUsuarioSocial).First(&rol).Error; err != nil {
		return nil, err
	}

	sub := gc.Sub
	provider := "google"
	usuario = usuarios.Usuario{
		Nombre:          firstNonEmpty(gc.GivenName, gc.Name),
		Apellido:        gc.FamilyName,
		Email:           gc.Email,
		Password:        nil,
		GoogleID:        &sub,
		ProviderType:    &provider,
		EmailVerificado: true,
		RolID:           rol.ID,
	}
	if gc.Picture != "" {
		foto := gc.Picture
		usuario.FotoPerfil = &foto
	}

	if err := h.DB.Create(&usuario).Error; err != nil {
		return nil, err
	}
	usuario.Rol = &rol
	return &usuario, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
