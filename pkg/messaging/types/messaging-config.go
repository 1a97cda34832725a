package types

type MessagingConfigs struct {
	GlobalEmailTemplateConstants map[string]string `json:"global_email_template_constants" yaml:"global_email_template_constants"`

	// Language the templates are resolved with when a tenant has no
	// localized variant for the requested one.
	DefaultLanguage string `json:"default_language" yaml:"default_language"`

	SmtpServerConfigPath string `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
}
