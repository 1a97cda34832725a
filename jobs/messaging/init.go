package main

import (
	"os"

	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/db"
	"github.com/Scrumease/Scrum-Ease-Web-API/pkg/utils"
	"gopkg.in/yaml.v2"

	messagingDB "github.com/Scrumease/Scrum-Ease-Web-API/pkg/db/messaging"
	emailsending "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/email-sending"
	messagingTypes "github.com/Scrumease/Scrum-Ease-Web-API/pkg/messaging/types"
	smtpclient "github.com/Scrumease/Scrum-Ease-Web-API/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_MESSAGING_DB_USERNAME = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD = "MESSAGING_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		MessagingDB db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`

	RunTasks struct {
		ProcessOutgoingEmails bool `json:"process_outgoing_emails" yaml:"process_outgoing_emails"`
	} `json:"run_tasks" yaml:"run_tasks"`
}

var conf config

var (
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
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_MESSAGING_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MessagingDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MESSAGING_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MessagingDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
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
