package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "alpaca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestDefaultMQTTConfig(t *testing.T) {
	st := openTestStore(t)

	cfg, err := st.GetMQTTConfig()
	require.NoError(t, err)
	assert.Equal(t, MQTTConfig{Host: "localhost", Port: 1883, TopicRoot: "alpaca"}, cfg)
}

func TestSetMQTTConfig(t *testing.T) {
	st := openTestStore(t)

	tests := []struct {
		name        string
		cfg         MQTTConfig
		expectError bool
	}{
		{name: "Valid", cfg: MQTTConfig{Host: "broker", Port: 8883, Username: "obs", TopicRoot: "site"}},
		{name: "Empty host", cfg: MQTTConfig{Port: 1883}, expectError: true},
		{name: "Port too low", cfg: MQTTConfig{Host: "broker", Port: 80}, expectError: true},
		{name: "Port too high", cfg: MQTTConfig{Host: "broker", Port: 70000}, expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := st.SetMQTTConfig(tc.cfg)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := st.GetMQTTConfig()
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, got)
		})
	}
}

func TestConfigSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpaca.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SetMQTTConfig(MQTTConfig{Host: "broker", Port: 1884}))
	require.NoError(t, st.SaveProfile(Profile{Name: "mount", Descriptor: "telescope/10.0.0.5/0"}))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	cfg, err := st.GetMQTTConfig()
	require.NoError(t, err)
	assert.Equal(t, "broker", cfg.Host)
	assert.Equal(t, "alpaca", cfg.TopicRoot)

	p, err := st.GetProfile("mount")
	require.NoError(t, err)
	assert.Equal(t, "telescope/10.0.0.5/0", p.Descriptor)
}

func TestProfiles(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.SaveProfile(Profile{Name: "roof", Descriptor: "dome/obs.local:11111/0"}))
	require.NoError(t, st.SaveProfile(Profile{Name: "mount", Descriptor: "telescope/10.0.0.5/0", Scheme: "https"}))

	assert.Error(t, st.SaveProfile(Profile{Name: "bad", Descriptor: "spectrograph/x/0"}))
	assert.Error(t, st.SaveProfile(Profile{Name: "", Descriptor: "dome/x/0"}))
	assert.Error(t, st.SaveProfile(Profile{Name: "a/b", Descriptor: "dome/x/0"}))

	profiles, err := st.ListProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "mount", profiles[0].Name)
	assert.Equal(t, "roof", profiles[1].Name)

	dev, err := profiles[0].Open()
	require.NoError(t, err)
	assert.Equal(t, "https://10.0.0.5/api/v1/telescope/0", dev.Identity().BaseURL())
	_, ok := dev.(*alpaca.Telescope)
	assert.True(t, ok)

	require.NoError(t, st.DeleteProfile("roof"))
	_, err = st.GetProfile("roof")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteProfile("roof"), ErrNotFound)
}

func TestLoadProfiles(t *testing.T) {
	doc := `
devices:
  - name: mount
    descriptor: telescope/10.0.0.5/0
  - name: cam
    descriptor: camera/10.0.0.6:8080/1
    scheme: https
    api_version: 1
    client_id: 42
`
	profiles, err := LoadProfiles(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []Profile{
		{Name: "mount", Descriptor: "telescope/10.0.0.5/0"},
		{Name: "cam", Descriptor: "camera/10.0.0.6:8080/1", Scheme: "https", APIVersion: 1, ClientID: 42},
	}, profiles)

	tests := []struct {
		name string
		doc  string
	}{
		{name: "Duplicate", doc: "devices:\n  - {name: a, descriptor: dome/x/0}\n  - {name: a, descriptor: dome/x/1}\n"},
		{name: "Unknown field", doc: "devices:\n  - {name: a, descriptor: dome/x/0, port: 1}\n"},
		{name: "Bad descriptor", doc: "devices:\n  - {name: a, descriptor: dome/x}\n"},
		{name: "Not YAML", doc: "devices: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProfiles(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}

	empty, err := LoadProfiles(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestImportProfiles(t *testing.T) {
	st := openTestStore(t)

	n, err := st.ImportProfiles(strings.NewReader("devices:\n  - {name: sm, descriptor: safetymonitor/10.0.0.7/0}\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := st.GetProfile("sm")
	require.NoError(t, err)
	assert.Equal(t, "safetymonitor/10.0.0.7/0", p.Descriptor)
}

func TestImportProfilesIsAllOrNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpaca.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	doc := "devices:\n  - {name: a, descriptor: dome/10.0.0.7/0}\n  - {name: b, descriptor: dome/10.0.0.7/1}\n"
	n, err := st.ImportProfiles(strings.NewReader(doc))
	assert.Error(t, err)
	assert.Equal(t, 0, n)

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	profiles, err := st.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)

	n, err = st.ImportProfiles(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
