package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"storage": map[string]any{
			"backend":            "memory",
			"healthCheckTimeout": "5s",
			"postgres": map[string]any{
				"sslMode": "disable",
				"master": map[string]any{
					"userName": "user",
				},
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORAGE_BACKEND", want: "storage.backend"},
		{envKey: "STORAGE_HEALTHCHECKTIMEOUT", want: "storage.healthCheckTimeout"},
		{envKey: "STORAGE_POSTGRES_SSLMODE", want: "storage.postgres.sslMode"},
		{envKey: "STORAGE_POSTGRES_MASTER_USERNAME", want: "storage.postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsStorageAndAuth(t *testing.T) {
	cfg := &Config{}
	cfg.Storage.Backend = "  Firestore "

	cfg.applyDefaults()

	if cfg.Storage.Backend != BackendFirestore {
		t.Fatalf("backend = %q, want %q", cfg.Storage.Backend, BackendFirestore)
	}
	if cfg.Storage.HealthCheckTimeout != defaultHealthCheckTimeout {
		t.Fatalf("healthCheckTimeout = %s, want %s", cfg.Storage.HealthCheckTimeout, defaultHealthCheckTimeout)
	}
	if cfg.Auth == nil || cfg.Auth.TokenTTL != defaultTokenTTL {
		t.Fatalf("auth token TTL not defaulted: %+v", cfg.Auth)
	}
	if cfg.HTTP.MaxRequestBodySize != defaultMaxRequestBodySize {
		t.Fatalf("maxRequestBodySize = %q", cfg.HTTP.MaxRequestBodySize)
	}
	if cfg.PubSub == nil || cfg.PubSub.WorkerPort != defaultWorkerPort {
		t.Fatalf("worker port not defaulted: %+v", cfg.PubSub)
	}
}

func TestApplyDefaults_EmptyBackendIsMemory(t *testing.T) {
	cfg := &Config{}

	cfg.applyDefaults()

	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("backend = %q, want %q", cfg.Storage.Backend, BackendMemory)
	}
}
