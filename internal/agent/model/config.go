package model

// ================ Config ================
type SessionConfig struct {
	TTL     string `envconfig:"SESSION_TTL" default:"720h"`
	Backend string `envconfig:"SESSION_BACKEND" default:"memory"`
	FileDir string `envconfig:"SESSION_FILE_DIR" default:".session_cache"`
}

type GeneratorModelConfig struct {
	Model          string  `envconfig:"GENERATOR_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"GENERATOR_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"GENERATOR_TEMPERATURE" default:"0.7"`
	TimeoutSeconds int     `envconfig:"GENERATOR_TIMEOUT_SECONDS" default:"20"`
}

type PersonaConfig struct {
	AssistantName   string `envconfig:"PERSONA_ASSISTANT_NAME" default:"Emily"`
	AgencyName      string `envconfig:"PERSONA_AGENCY_NAME" default:"TDH Agency"`
	SubmissionEmail string `envconfig:"PERSONA_SUBMISSION_EMAIL" default:"info@tdhagency.com"`
}
