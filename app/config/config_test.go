package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("episode:\n  episode_id: Ep_1\n"))
	require.NoError(t, err)

	assert.Equal(t, "Ep_1", cfg.Episode.EpisodeID)
	assert.Equal(t, "Default", cfg.Episode.Template)
	assert.Equal(t, "SemLog", cfg.Episode.Directory)
	assert.Equal(t, "DefaultTaskId", cfg.Episode.TaskID)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 1024, cfg.Server.QueueSize)
	assert.True(t, cfg.Events.Contact)
	assert.True(t, cfg.Events.SupportedBy)
	assert.True(t, cfg.Events.Grasp)
	assert.Equal(t, 30, cfg.Storage.S3.TimeoutSeconds)
	assert.Empty(t, cfg.Storage.S3.Bucket)
	assert.Equal(t, "semlog:episodes:", cfg.Storage.Redis.Prefix)
}

func TestParseStorage(t *testing.T) {
	cfg, err := Parse([]byte(`
storage:
  s3:
    bucket: episodes
    region: eu-central-1
    use_path_style: true
  redis:
    addr: localhost:6379
    db: 2
    ttl_hours: 24
`))
	require.NoError(t, err)

	assert.Equal(t, "episodes", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.UsePathStyle)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, 24, cfg.Storage.Redis.TTLHours)
}

func TestParseHands(t *testing.T) {
	data := []byte(`
hands:
  - handle: LeftHand
    group_a: [index_3, middle_3]
    group_b: [thumb_3]
entities:
  - {handle: LeftHand, id: LH_1, class: LeftHand}
  - {handle: Bottle_BP, id: Bottle_7, class: Bottle}
events:
  supported_by: false
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, cfg.Hands, 1)
	assert.Equal(t, []string{"index_3", "middle_3"}, cfg.Hands[0].GroupA)
	assert.Equal(t, 0.5, cfg.Hands[0].UnpauseTrigger)
	assert.Len(t, cfg.Entities, 2)
	assert.False(t, cfg.Events.SupportedBy)
	assert.True(t, cfg.Events.Contact)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"hand without groups", "hands:\n  - handle: LeftHand\n"},
		{"entity without class", "entities:\n  - {handle: Cup_BP, id: Cup_1}\n"},
		{"broken yaml", "episode: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("episode:\n  template: IAI\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "IAI", cfg.Episode.Template)
}

func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	require.Len(t, cfg.Hands, 1)
	assert.Equal(t, []string{"thumb_3"}, cfg.Hands[0].GroupB)
	assert.Len(t, cfg.Entities, 3)
	assert.True(t, cfg.Episode.WriteTimelines)
}
