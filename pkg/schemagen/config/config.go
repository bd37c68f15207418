package config

import (
	"strings"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables that override config keys
const EnvPrefix = "KJS"

// Tag sources
const (
	TagSourceGitHub = "github"
	TagSourceGit    = "git"
)

// Converter runtimes
const (
	RuntimeDocker    = "docker"
	RuntimeDockerAPI = "docker-api"
	RuntimeLocal     = "local"
)

// Formatters
const (
	FormatterNative = "native"
	FormatterJq     = "jq"
)

// Config holds everything a build run needs
type Config struct {
	Earliest  string
	Latest    string
	TagPrefix string

	OutputRoot    string
	RefBaseURL    string
	SchemaBaseURL string
	SchemaPath    string

	Workers     int
	TaskTimeout time.Duration

	TagSource    string
	GitHubRepo   string
	GitHubAPIURL string
	GitHubToken  string
	GitURL       string

	Runtime         string
	Image           string
	ConverterBinary string
	DockerBinary    string

	Formatter string
	JqBinary  string

	Strict     bool
	Expanded   bool
	Kubernetes bool
	StandAlone bool

	Verify bool
	Report string
}

// Defaults are the values used when neither a config file, an environment
// variable nor a flag sets a key
var Defaults = map[string]interface{}{
	"earliest":         "v1.7.0",
	"latest":           "v2.0.0",
	"tag-prefix":       "v1",
	"output-root":      "kubernetes-api",
	"ref-base-url":     "https://patthomasrick.github.io/kubernetes-json-schema",
	"schema-base-url":  "https://raw.githubusercontent.com/kubernetes/kubernetes",
	"schema-path":      "api/openapi-spec/swagger.json",
	"workers":          4,
	"task-timeout":     "30m",
	"tag-source":       TagSourceGitHub,
	"github-repo":      "kubernetes/kubernetes",
	"github-api-url":   "",
	"github-token":     "",
	"git-url":          "https://github.com/kubernetes/kubernetes.git",
	"runtime":          RuntimeDocker,
	"image":            "patthomasrick/openapi2jsonschema:latest",
	"converter-binary": "openapi2jsonschema",
	"docker-binary":    "docker",
	"formatter":        FormatterNative,
	"jq-binary":        "jq",
	"strict":           true,
	"expanded":         true,
	"kubernetes":       true,
	"stand-alone":      false,
	"verify":           false,
	"report":           "",
}

// SetDefaults registers the defaults and the environment binding on v
func SetDefaults(v *viper.Viper) {
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// KJS_GITHUB_TOKEN wins over the usual GITHUB_TOKEN
	_ = v.BindEnv("github-token", "GITHUB_TOKEN")
}

// Load reads the config from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{
		Earliest:  v.GetString("earliest"),
		Latest:    v.GetString("latest"),
		TagPrefix: v.GetString("tag-prefix"),

		OutputRoot:    v.GetString("output-root"),
		RefBaseURL:    v.GetString("ref-base-url"),
		SchemaBaseURL: v.GetString("schema-base-url"),
		SchemaPath:    v.GetString("schema-path"),

		Workers:     v.GetInt("workers"),
		TaskTimeout: v.GetDuration("task-timeout"),

		TagSource:    v.GetString("tag-source"),
		GitHubRepo:   v.GetString("github-repo"),
		GitHubAPIURL: v.GetString("github-api-url"),
		GitHubToken:  v.GetString("github-token"),
		GitURL:       v.GetString("git-url"),

		Runtime:         v.GetString("runtime"),
		Image:           v.GetString("image"),
		ConverterBinary: v.GetString("converter-binary"),
		DockerBinary:    v.GetString("docker-binary"),

		Formatter: v.GetString("formatter"),
		JqBinary:  v.GetString("jq-binary"),

		Strict:     v.GetBool("strict"),
		Expanded:   v.GetBool("expanded"),
		Kubernetes: v.GetBool("kubernetes"),
		StandAlone: v.GetBool("stand-alone"),

		Verify: v.GetBool("verify"),
		Report: v.GetString("report"),
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the config for invalid values
func (c *Config) Validate() error {
	err := c.Range().Validate()
	if err != nil {
		return errors.Wrap(err, "earliest/latest")
	}

	if c.Workers <= 0 {
		return errors.Errorf("workers must be greater than 0, got %d", c.Workers)
	}
	if c.TaskTimeout < 0 {
		return errors.Errorf("task-timeout must not be negative, got %s", c.TaskTimeout)
	}
	if c.OutputRoot == "" {
		return errors.New("output-root must not be empty")
	}

	switch c.TagSource {
	case TagSourceGitHub:
		if len(strings.Split(c.GitHubRepo, "/")) != 2 {
			return errors.Errorf("github-repo must have the form owner/name, got %q", c.GitHubRepo)
		}
	case TagSourceGit:
		if c.GitURL == "" {
			return errors.New("git-url must not be empty")
		}
	default:
		return errors.Errorf("unknown tag-source %q, expected %s or %s", c.TagSource, TagSourceGitHub, TagSourceGit)
	}

	switch c.Runtime {
	case RuntimeDocker, RuntimeDockerAPI, RuntimeLocal:
	default:
		return errors.Errorf("unknown runtime %q, expected %s, %s or %s", c.Runtime, RuntimeDocker, RuntimeDockerAPI, RuntimeLocal)
	}

	switch c.Formatter {
	case FormatterNative, FormatterJq:
	default:
		return errors.Errorf("unknown formatter %q, expected %s or %s", c.Formatter, FormatterNative, FormatterJq)
	}

	return nil
}

// Range returns the inclusive version range to build
func (c *Config) Range() version.Range {
	return version.Range{Lower: c.Earliest, Upper: c.Latest}
}

// TaskOptions returns the options every conversion task is created with
func (c *Config) TaskOptions() convert.TaskOptions {
	return convert.TaskOptions{
		OutputRoot:    c.OutputRoot,
		SchemaBaseURL: c.SchemaBaseURL,
		SchemaPath:    c.SchemaPath,
		RefBaseURL:    c.RefBaseURL,
		Strict:        c.Strict,
		Expanded:      c.Expanded,
		Kubernetes:    c.Kubernetes,
		StandAlone:    c.StandAlone,
	}
}
