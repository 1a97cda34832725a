package apihandlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/Scrumease/Scrum-Ease-Web-API/pkg/apihelpers/middlewares"
	jwthandling "github.com/Scrumease/Scrum-Ease-Web-API/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	standupService "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup"
	standupTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup/types"
)

func (h *HttpEndpoints) AddStandupAPI(rg *gin.RouterGroup) {
	standupGroup := rg.Group("/standup")

	dailyGroup := standupGroup.Group("/daily")
	dailyGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		dailyGroup.GET("/check/:formID", h.checkOrCreateDaily)
		dailyGroup.POST("/answer/:formID", mw.RequirePayload(), h.answerDaily)
		dailyGroup.GET("/responses/:formID", h.getResponses) // ?userID=...&startDate=DD/MM/YYYY&endDate=DD/MM/YYYY
		dailyGroup.GET("/export/:formID", h.exportResponses) // same query params as /responses
	}

	formsGroup := standupGroup.Group("/forms")
	formsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		formsGroup.POST("/:formID/activate", h.activateForm)
	}
}

func (h *HttpEndpoints) checkOrCreateDaily(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	formID := c.Param("formID")

	result, err := standupService.CheckOrCreateDaily(token.Subject, token.TenantID, formID)
	if err != nil {
		slog.Error("error preparing daily entry", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error preparing daily entry"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HttpEndpoints) answerDaily(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	formID := c.Param("formID")

	var req struct {
		Date      string                     `json:"date"`
		Responses []standupTypes.FormResponse `json:"responses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Date == "" {
		slog.Error("date is required", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	if len(req.Responses) == 0 {
		slog.Error("responses are required", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "responses are required"})
		return
	}

	err := standupService.SubmitAnswer(token.Subject, token.TenantID, formID, req.Date, req.Responses)
	if err != nil {
		if errors.Is(err, standupTypes.ErrEntryNotFound) {
			slog.Warn("daily entry not found", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID), slog.String("date", req.Date))
			c.JSON(http.StatusConflict, gin.H{"error": "daily entry not found"})
			return
		}
		if errors.Is(err, standupTypes.ErrAlreadyAnswered) {
			slog.Warn("daily entry already answered", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID), slog.String("date", req.Date))
			c.JSON(http.StatusConflict, gin.H{"error": "daily entry already answered"})
			return
		}
		slog.Error("error saving daily responses", slog.String("tenantID", token.TenantID), slog.String("userID", token.Subject), slog.String("formID", formID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving daily responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "responses saved"})
}

func (h *HttpEndpoints) getResponses(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	filter, err := h.entryFilterFromRequest(c, token)
	if err != nil {
		slog.Error("invalid filter", slog.String("tenantID", token.TenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// entries that were created but never answered stay out of the listing
	filter.AnsweredOnly = true

	entries, err := standupService.GetEntries(filter)
	if err != nil {
		slog.Error("error fetching daily entries", slog.String("tenantID", token.TenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching daily entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *HttpEndpoints) exportResponses(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	filter, err := h.entryFilterFromRequest(c, token)
	if err != nil {
		slog.Error("invalid filter", slog.String("tenantID", token.TenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := standupService.ExportEntries(filter)
	if err != nil {
		slog.Error("error exporting daily entries", slog.String("tenantID", token.TenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error exporting daily entries"})
		return
	}

	filename := fmt.Sprintf("standup_responses_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.WriteAll(rows); err != nil {
		slog.Error("error writing csv", slog.String("tenantID", token.TenantID), slog.String("error", err.Error()))
	}
}

func (h *HttpEndpoints) activateForm(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	formID := c.Param("formID")

	if err := standupService.ActivateForm(token.TenantID, formID); err != nil {
		slog.Error("error activating form", slog.String("tenantID", token.TenantID), slog.String("formID", formID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error activating form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "form activated"})
}

func (h *HttpEndpoints) entryFilterFromRequest(c *gin.Context, token *jwthandling.UserClaims) (filter standupTypes.DailyEntryFilter, err error) {
	tenantID, err := primitive.ObjectIDFromHex(token.TenantID)
	if err != nil {
		return filter, errors.New("invalid tenant id in token")
	}
	formID, err := primitive.ObjectIDFromHex(c.Param("formID"))
	if err != nil {
		return filter, errors.New("invalid form id")
	}

	filter = standupTypes.DailyEntryFilter{
		TenantID:  tenantID,
		FormID:    formID,
		StartDate: c.DefaultQuery("startDate", ""),
		EndDate:   c.DefaultQuery("endDate", ""),
	}

	if userIDHex := c.DefaultQuery("userID", ""); userIDHex != "" {
		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			return filter, errors.New("invalid user id")
		}
		filter.UserID = &userID
	}
	return filter, nil
}
