package cliconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveContexts(t *testing.T, current string, contexts map[string]*Context) {
	t.Helper()
	cfg := NewDefaultContextConfig()
	for name, ctx := range contexts {
		require.NoError(t, cfg.AddContext(name, ctx))
	}
	cfg.CurrentContext = current
	require.NoError(t, SaveContextConfig(cfg))
}

func TestLoadContextConfig_MissingFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadContextConfig()

	require.NoError(t, err)
	assert.Empty(t, cfg.CurrentContext)
	assert.Empty(t, cfg.Contexts)
	assert.Nil(t, cfg.GetCurrentContext())
}

func TestContextConfig_RoundTrip(t *testing.T) {
	isolate(t)
	saveContexts(t, "staging", map[string]*Context{
		"staging": {APIURL: "https://staging.example.com/", Description: "Staging"},
		"ci":      {APIURL: "http://ci:8080/"},
	})

	cfg, err := LoadContextConfig()

	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.CurrentContext)
	require.NotNil(t, cfg.GetCurrentContext())
	assert.Equal(t, "https://staging.example.com/", cfg.GetCurrentContext().APIURL)
	assert.Len(t, cfg.Contexts, 2)
}

func TestContextConfig_Mutations(t *testing.T) {
	cfg := NewDefaultContextConfig()
	require.NoError(t, cfg.AddContext("a", &Context{APIURL: "http://a/"}))
	assert.ErrorContains(t, cfg.AddContext("a", &Context{}), "already exists")
	assert.ErrorContains(t, cfg.AddContext("", &Context{}), "name is required")

	assert.ErrorContains(t, cfg.SetCurrentContext("b"), "context not found: b")
	require.NoError(t, cfg.SetCurrentContext("a"))

	assert.ErrorContains(t, cfg.RemoveContext("a"), "cannot remove current context")
	assert.ErrorContains(t, cfg.RemoveContext("b"), "context not found")

	cfg.CurrentContext = ""
	require.NoError(t, cfg.RemoveContext("a"))
	assert.Empty(t, cfg.Contexts)
}

func TestApplyContext(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		flag       string
		env        map[string]string
		wantURL    string
		wantSource string
		wantErr    string
	}{
		{name: "no context selected", wantURL: DefaultAPIURL, wantSource: SourceDefault},
		{name: "current context", current: "staging", wantURL: "https://staging.example.com/", wantSource: SourceContext},
		{name: "flag beats current", current: "staging", flag: "ci", wantURL: "http://ci:8080/", wantSource: SourceContext},
		{name: "env context", env: map[string]string{EnvContext: "ci"}, wantURL: "http://ci:8080/", wantSource: SourceContext},
		{name: "env url beats context", current: "staging", env: map[string]string{EnvAPIURL: "http://env:1/"}, wantURL: "http://env:1/", wantSource: SourceEnv},
		{name: "unknown flag context", flag: "prod", wantErr: "context not found: prod"},
		{name: "dangling current context is ignored", current: "gone", wantURL: DefaultAPIURL, wantSource: SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			contexts := NewDefaultContextConfig()
			contexts.Contexts["staging"] = &Context{APIURL: "https://staging.example.com/"}
			contexts.Contexts["ci"] = &Context{APIURL: "http://ci:8080/"}
			contexts.CurrentContext = tt.current
			require.NoError(t, SaveContextConfig(contexts))

			cfg, err := LoadAll("")
			require.NoError(t, err)
			err = ApplyContext(cfg, tt.flag)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.APIURL)
			assert.Equal(t, tt.wantSource, cfg.Sources["apiUrl"])
		})
	}
}
