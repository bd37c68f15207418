package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load(newViper())
	assert.NilError(t, err)

	assert.Equal(t, config.Earliest, "v1.7.0")
	assert.Equal(t, config.Latest, "v2.0.0")
	assert.Equal(t, config.TagPrefix, "v1")
	assert.Equal(t, config.OutputRoot, "kubernetes-api")
	assert.Equal(t, config.Workers, 4)
	assert.Equal(t, config.TaskTimeout, 30*time.Minute)
	assert.Equal(t, config.TagSource, TagSourceGitHub)
	assert.Equal(t, config.Runtime, RuntimeDocker)
	assert.Equal(t, config.Formatter, FormatterNative)
	assert.Equal(t, config.Strict, true)
	assert.Equal(t, config.StandAlone, false)

	options := config.TaskOptions()
	assert.Equal(t, options.OutputRoot, "kubernetes-api")
	assert.Equal(t, options.RefBaseURL, "https://patthomasrick.github.io/kubernetes-json-schema")
	assert.Equal(t, config.Range().String(), "[v1.7.0, v2.0.0]")
}

func TestLoadEnvironment(t *testing.T) {
	os.Setenv("KJS_OUTPUT_ROOT", "/tmp/schemas")
	os.Setenv("KJS_WORKERS", "8")
	os.Setenv("GITHUB_TOKEN", "secret")
	defer os.Unsetenv("KJS_OUTPUT_ROOT")
	defer os.Unsetenv("KJS_WORKERS")
	defer os.Unsetenv("GITHUB_TOKEN")

	config, err := Load(newViper())
	assert.NilError(t, err)
	assert.Equal(t, config.OutputRoot, "/tmp/schemas")
	assert.Equal(t, config.Workers, 8)
	assert.Equal(t, config.GitHubToken, "secret")
}

type validateTestCase struct {
	name string

	set map[string]interface{}

	expectedErr string
}

func TestValidate(t *testing.T) {
	testCases := []validateTestCase{
		{
			name: "Lower bound above upper bound",
			set:  map[string]interface{}{"earliest": "v1.30.0", "latest": "v1.29.0"},

			expectedErr: "earliest/latest: lower bound v1.30.0 is greater than upper bound v1.29.0",
		},
		{
			name: "Unparsable bound",
			set:  map[string]interface{}{"earliest": "v1.x"},

			expectedErr: `invalid version "v1.x"`,
		},
		{
			name: "No workers",
			set:  map[string]interface{}{"workers": 0},

			expectedErr: "workers must be greater than 0",
		},
		{
			name: "Unknown runtime",
			set:  map[string]interface{}{"runtime": "podman"},

			expectedErr: `unknown runtime "podman"`,
		},
		{
			name: "Unknown formatter",
			set:  map[string]interface{}{"formatter": "prettier"},

			expectedErr: `unknown formatter "prettier"`,
		},
		{
			name: "Unknown tag source",
			set:  map[string]interface{}{"tag-source": "svn"},

			expectedErr: `unknown tag-source "svn"`,
		},
		{
			name: "Malformed repository",
			set:  map[string]interface{}{"github-repo": "kubernetes"},

			expectedErr: "github-repo must have the form owner/name",
		},
		{
			name: "Same bounds",
			set:  map[string]interface{}{"earliest": "v1.29.0", "latest": "v1.29"},
		},
	}

	for _, testCase := range testCases {
		v := newViper()
		for key, value := range testCase.set {
			v.Set(key, value)
		}

		_, err := Load(v)
		if testCase.expectedErr == "" {
			assert.NilError(t, err, "Unexpected error in testCase %s", testCase.name)
		} else {
			assert.ErrorContains(t, err, testCase.expectedErr, "Unexpected error in testCase %s", testCase.name)
		}
	}
}
