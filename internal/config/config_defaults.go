package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 1024*1024) // 1MB

	// Analysis Configuration
	v.SetDefault("analysis.similarityThreshold", 0.6)
	v.SetDefault("analysis.resumeKeywordLimit", 20)
	v.SetDefault("analysis.jdKeywordLimit", 30)
	v.SetDefault("analysis.missingKeywordLimit", 15)
	v.SetDefault("analysis.skillsGapLimit", 20)
	v.SetDefault("analysis.truncationLength", 5000)
	v.SetDefault("analysis.contactHeaderLength", 200)
	v.SetDefault("analysis.allowlistFile", "")
	v.SetDefault("analysis.cacheSize", 128)

	// Embedding Provider Configuration
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-embedding-001")
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	// Grammar Backend Configuration
	v.SetDefault("grammar.enabled", true)
	v.SetDefault("grammar.endpoint", "https://api.languagetool.org/v2/check")
	v.SetDefault("grammar.language", "en-US")
	v.SetDefault("grammar.timeout", 15*time.Second)
	v.SetDefault("grammar.maxSuggestions", 3)
	v.SetDefault("grammar.circuitBreaker.enabled", true)
	v.SetDefault("grammar.circuitBreaker.maxRequests", 3)
	v.SetDefault("grammar.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("grammar.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("grammar.circuitBreaker.minRequests", 3)
	v.SetDefault("grammar.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.tls.enabled", false)
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumescore")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	v.SetDefault("observability.customMetrics.trackNlpOperations", true)
	v.SetDefault("observability.customMetrics.trackPipelineStages", true)
	v.SetDefault("observability.customMetrics.trackCacheActivity", true)
	v.SetDefault("observability.customMetrics.trackRateLimits", true)

	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
