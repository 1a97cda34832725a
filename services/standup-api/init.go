package main

import (
	"os"
	"time"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/db"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	messagingDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/messaging"
	standupDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/standup"
	emailsending "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/email-sending"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_STANDUP_DB_USERNAME   = "STANDUP_DB_USERNAME"
	ENV_STANDUP_DB_PASSWORD   = "STANDUP_DB_PASSWORD"
	ENV_MESSAGING_DB_USERNAME = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD = "MESSAGING_DB_PASSWORD"

	ENV_USER_JWT_SIGN_KEY = "USER_JWT_SIGN_KEY"
)

type StandupApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	UserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"user_jwt_config" yaml:"user_jwt_config"`

	// DB configs
	DBConfigs struct {
		StandupDB   db.DBConfigYaml `json:"standup_db" yaml:"standup_db"`
		MessagingDB db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`
}

var conf StandupApiConfig

var (
	standupDBService   *standupDB.StandupDBService
	messagingDBService *messagingDB.MessagingDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// init message sending config
	initMessageSendingConfig()

	initStandupService()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_STANDUP_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.StandupDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_STANDUP_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.StandupDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_MESSAGING_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MessagingDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MESSAGING_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MessagingDB.Password = dbPassword
	}

	if userJwtSignKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); userJwtSignKey != "" {
		conf.UserJWTConfig.SignKey = userJwtSignKey
	}
}

func initDBs() {
	var err error
	standupDBService, err = standupDB.NewStandupDBService(db.DBConfigFromYamlObj(conf.DBConfigs.StandupDB))
	if err != nil {
		panic(err)
	}

	messagingDBService, err = messagingDB.NewMessagingDBService(db.DBConfigFromYamlObj(conf.DBConfigs.MessagingDB))
	if err != nil {
		panic(err)
	}
}

func initMessageSendingConfig() {
	// The API only renders and enqueues emails, so no SMTP clients here.
	emailsending.InitMessageSendingVariables(
		nil,
		globalTemplateInfos(),
		messagingDBService,
	)
}

func globalTemplateInfos() map[string]interface{} {
	infos := map[string]interface{}{}
	for key, value := range conf.MessagingConfigs.GlobalEmailTemplateConstants {
		infos[key] = value
	}
	return infos
}

func initStandupService() {
	standup.Init(
		standupDBService,
		emailsending.Mailer{
			DefaultLanguage: conf.MessagingConfigs.DefaultLanguage,
			UseQueue:        true,
		},
		standup.DEFAULT_REMINDER_WORKERS,
	)
}
