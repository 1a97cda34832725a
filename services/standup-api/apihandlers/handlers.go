package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	messagingDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/messaging"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey    string
	tokenExpiresIn  time.Duration
	messagingDBConn *messagingDB.MessagingDBService
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	messagingDBConn *messagingDB.MessagingDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:    tokenSignKey,
		tokenExpiresIn:  tokenExpiresIn,
		messagingDBConn: messagingDBConn,
	}
}
