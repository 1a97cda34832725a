package main

import (
	"os"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/db"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/standup"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/utils"
	"gopkg.in/yaml.v2"

	messagingDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/messaging"
	standupDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/standup"
	emailsending "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/email-sending"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	smtpclient "github.com/Scrumease/Scrum-Ease-Web-API/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_STANDUP_DB_USERNAME   = "STANDUP_DB_USERNAME"
	ENV_STANDUP_DB_PASSWORD   = "STANDUP_DB_PASSWORD"
	ENV_MESSAGING_DB_USERNAME = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD = "MESSAGING_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		StandupDB   db.DBConfigYaml `json:"standup_db" yaml:"standup_db"`
		MessagingDB db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`

	ReminderWorkers int `json:"reminder_workers" yaml:"reminder_workers"`
}

var conf config

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

	// init db
	initDBs()

	// init message sending
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
	serverList := smtpclient.SmtpServerList{}
	if err := serverList.ReadFromFile(conf.MessagingConfigs.SmtpServerConfigPath); err != nil {
		panic(err)
	}

	smtpClients, err := smtpclient.NewSmtpClients(serverList)
	if err != nil {
		panic(err)
	}

	infos := map[string]interface{}{}
	for key, value := range conf.MessagingConfigs.GlobalEmailTemplateConstants {
		infos[key] = value
	}

	emailsending.InitMessageSendingVariables(
		smtpClients,
		infos,
		messagingDBService,
	)
}

func initStandupService() {
	// Direct SMTP delivery with queue fallback, reminders should not wait
	// for the next messaging job run.
	standup.Init(
		standupDBService,
		emailsending.Mailer{
			DefaultLanguage: conf.MessagingConfigs.DefaultLanguage,
			UseQueue:        false,
		},
		conf.ReminderWorkers,
	)
}
