package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Scrumease/Scrum-Ease-Web-API/pkg/apihelpers/middlewares"
	jwthandling "github.com/Scrumease/Scrum-Ease-Web-API/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/token/renew", mw.GetAndValidateUserJWT(h.tokenSignKey), h.renewToken)
	}
}

// renewToken issues a fresh token with the same claims as the validated one.
func (h *HttpEndpoints) renewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	newToken, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		token.Subject,
		token.TenantID,
		token.Role,
		token.Email,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate new token", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": newToken,
		"expiresIn":   h.tokenExpiresIn.Seconds(),
	})
}
