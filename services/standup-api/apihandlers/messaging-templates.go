package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Scrumease/Scrum-Ease-Web-API/pkg/apihelpers/middlewares"
	jwthandling "github.com/Scrumease/Scrum-Ease-Web-API/pkg/jwt-handling"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/templates"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const ROLE_ADMIN = "admin"

func (h *HttpEndpoints) AddMessagingAPI(rg *gin.RouterGroup) {
	messagingGroup := rg.Group("/messaging")
	messagingGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))

	templatesGroup := messagingGroup.Group("/email-templates")
	{
		templatesGroup.GET("/:messageType", h.getEmailTemplate)
		templatesGroup.POST("", mw.RequirePayload(), h.saveEmailTemplate)
		templatesGroup.DELETE("/:messageType", h.deleteEmailTemplate)
	}
}

// getEmailTemplate returns the tenant's override for a message type, or the
// global default when the tenant has none.
func (h *HttpEndpoints) getEmailTemplate(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	messageType := c.Param("messageType")

	template, err := h.messagingDBConn.GetTenantEmailTemplateByMessageType(token.TenantID, messageType)
	if err == mongo.ErrNoDocuments {
		template, err = h.messagingDBConn.GetGlobalEmailTemplateByMessageType(messageType)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"template": messagingTypes.EmailTemplate{
				MessageType:  messageType,
				Translations: []messagingTypes.LocalizedTemplate{},
			}})
			return
		}
		slog.Error("error getting email template", slog.String("tenantID", token.TenantID), slog.String("messageType", messageType), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting email template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

func (h *HttpEndpoints) saveEmailTemplate(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	if token.Role != ROLE_ADMIN {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var template messagingTypes.EmailTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if template.MessageType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messageType is required"})
		return
	}
	template.TenantID = token.TenantID

	err := templates.CheckAllTranslationsParsable(template.Translations, template.MessageType)
	if err != nil {
		slog.Error("error parsing template", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "error while checking template validity"})
		return
	}

	slog.Info("saving email template", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("messageType", template.MessageType))

	savedTemplate, err := h.messagingDBConn.SaveEmailTemplate(template)
	if err != nil {
		slog.Error("error saving email template", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving email template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": savedTemplate})
}

func (h *HttpEndpoints) deleteEmailTemplate(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	if token.Role != ROLE_ADMIN {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	messageType := c.Param("messageType")

	slog.Info("deleting email template", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("messageType", messageType))

	if err := h.messagingDBConn.DeleteEmailTemplate(token.TenantID, messageType); err != nil {
		slog.Error("error deleting email template", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting email template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email template deleted"})
}
