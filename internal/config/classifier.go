package config

import "os"

// ClassifierConfig holds configuration for the zero-shot classification
// endpoint. It is passed explicitly into the client constructor; there
// are no ambient credentials.
type ClassifierConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultClassifierConfig returns the default classifier configuration
func DefaultClassifierConfig() *ClassifierConfig {
	return &ClassifierConfig{
		APIKey:    os.Getenv("HF_API_KEY"),
		BaseURL:   getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
		Model:     getEnv("HF_MODEL", "facebook/bart-large-mnli"),
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the classification API is configured
func (c *ClassifierConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Endpoint returns the full inference endpoint for the configured model
func (c *ClassifierConfig) Endpoint() string {
	return c.BaseURL + "/" + c.Model
}
