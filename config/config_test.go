package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Definitions   struct {
		Dirs []string `mapstructure:"dirs"`
	} `mapstructure:"definitions"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected logging defaults to apply, got level %q", cfg.Logging.Level)
		}
	})

	t.Run("debug raises the log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug level, got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.Logging.Level = "error"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "error" {
			t.Errorf("expected error level, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: env}
		cfg.Logging.ApplyDefaults()
		return cfg
	}

	badLogging := valid("production")
	badLogging.Logging.Format = "xml"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid staging", valid("staging"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", valid("invalid"), true, "config.environment must be one of"},
		{"invalid logging", badLogging, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fnpipe.yml", `
name: fnpipe
environment: staging
logging:
  level: info
  format: json
definitions:
  dirs: [./pipelines, ./more]
`)

	var cfg testConfig
	if err := Load("fnpipe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "fnpipe" {
		t.Errorf("expected name 'fnpipe', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging.format 'json', got %q", cfg.Logging.Format)
	}
	if !reflect.DeepEqual(cfg.Definitions.Dirs, []string{"./pipelines", "./more"}) {
		t.Errorf("unexpected definition dirs %v", cfg.Definitions.Dirs)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fnpipe.yml", `
name: fnpipe
logging:
  level: info
  format: json
`)
	t.Setenv("FNPIPE_LOGGING_LEVEL", "debug")
	t.Setenv("OTHER_LOGGING_LEVEL", "error")

	var cfg testConfig
	if err := Load("fnpipe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected file value to survive, got %q", cfg.Logging.Format)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "FNKIT_TEST_ENVIRONMENT=production\n")
	t.Cleanup(func() { os.Unsetenv("FNKIT_TEST_ENVIRONMENT") })

	var cfg testConfig
	err := Load("fnkit-test", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{envPath: true}, loadEnv: true}),
		WithEnvFile(envPath),
	)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := Load("fnpipe", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadWithoutAnyFile(t *testing.T) {
	var cfg testConfig
	err := Load("fnpipe", &cfg, WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("expected Load to succeed without files, got %v", err)
	}
	if cfg.Name != "" {
		t.Errorf("expected empty config, got name %q", cfg.Name)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/fnpipe.yml": true,
		".env":                true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("fnpipe", LoaderConfig{})
	if files.ConfigFile != "./config/fnpipe.yml" {
		t.Errorf("expected ./config/fnpipe.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("fnpipe", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if explicit.ConfigFile != "a.yml" || explicit.EnvFile != "b.env" {
		t.Errorf("explicit paths should win, got %+v", explicit)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"NAME", []string{"name"}},
		{"LOGGING_LEVEL", []string{"logging_level", "logging.level"}},
		{"TELEMETRY_SAMPLE_RATE", []string{"telemetry_sample_rate", "telemetry.sample.rate", "telemetry.sample_rate"}},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got := generateEnvKeyVariants(tc.key)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP")(&lc)

	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.EnvPrefix != "APP" {
		t.Errorf("expected prefix APP, got %q", lc.EnvPrefix)
	}
}

type mockFS struct {
	files   map[string]bool
	loadEnv bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	if m.loadEnv {
		return (&RealFileSystem{}).LoadEnv(path)
	}
	return nil
}
