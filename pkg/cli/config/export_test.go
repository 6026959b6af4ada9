package config

var ParseCatalog = parseCatalog

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(webhookURL, botToken, channelID, signingSecret string) *Slack {
	return &Slack{
		webhookURL:    webhookURL,
		botToken:      botToken,
		channelID:     channelID,
		signingSecret: signingSecret,
	}
}

// NewAuthForTest creates an Auth config for testing purposes
func NewAuthForTest(jwtSecret, adminEmail, adminPassword string, devMode bool) *Auth {
	return &Auth{
		jwtSecret:     jwtSecret,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		devMode:       devMode,
	}
}

func NewServerForTest(addr string) *Server {
	return &Server{addr: addr}
}

func NewStorageForTest(bucket, uploadDir string, serveUploads bool) *Storage {
	return &Storage{bucket: bucket, uploadDir: uploadDir, serveUploads: serveUploads}
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
