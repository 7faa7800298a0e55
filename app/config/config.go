package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Log      Log      `yaml:"log"`
	Episode  Episode  `yaml:"episode"`
	Events   Events   `yaml:"events"`
	Hands    []Hand   `yaml:"hands" validate:"dive"`
	Entities []Entity `yaml:"entities" validate:"dive"`
	Server   Server   `yaml:"server"`
	Storage  Storage  `yaml:"storage"`
}

type Episode struct {
	// Task the episode belongs to
	TaskID string `yaml:"task_id" example:"DefaultTaskId"`
	// Episode id, a random one is generated when empty
	EpisodeID string `yaml:"episode_id" example:"Episode_01"`
	// Document template: Default, IAI, or anything else for an empty document
	Template string `yaml:"template" example:"Default"`
	// Directory the episode document and timelines are written to
	Directory string `yaml:"directory" example:"SemLog" validate:"required"`
	// Overwrite an existing episode document
	Overwrite bool `yaml:"overwrite" example:"false"`
	// Write per event type timelines next to the document
	WriteTimelines bool `yaml:"write_timelines" example:"true"`
}

type Events struct {
	Contact     bool `yaml:"contact" example:"true"`
	SupportedBy bool `yaml:"supported_by" example:"true"`
	Grasp       bool `yaml:"grasp" example:"true"`
	// Forward manipulator shape contacts as contact events
	ManipulatorContact bool `yaml:"manipulator_contact" example:"true"`
}

type Hand struct {
	// Simulation handle of the hand, resolved through the entity registry
	Handle string `yaml:"handle" example:"LeftHand" validate:"required"`
	// Shape names of the first opposing group
	GroupA []string `yaml:"group_a" example:"[\"index_3\"]" validate:"required,min=1"`
	// Shape names of the second opposing group
	GroupB []string `yaml:"group_b" example:"[\"thumb_3\"]" validate:"required,min=1"`
	// Trigger value at or above which grasp detection runs
	UnpauseTrigger float64 `yaml:"unpause_trigger" example:"0.5"`
	// Start paused until the first trigger update arrives
	StartPaused bool `yaml:"start_paused" example:"false"`
}

type Entity struct {
	Handle string `yaml:"handle" example:"Cup_BP" validate:"required"`
	ID     string `yaml:"id" example:"Cup_1" validate:"required"`
	Class  string `yaml:"class" example:"Cup" validate:"required"`
}

type Server struct {
	// Listen address of the signal ingest endpoint
	Addr string `yaml:"addr" example:":8080"`
	// Capacity of the signal queue
	QueueSize int `yaml:"queue_size" example:"1024" validate:"gte=0"`
}

type Storage struct {
	// Upload episode documents to S3 when a bucket is set
	S3 S3Storage `yaml:"s3"`
	// Store episode documents in Redis when an address is set
	Redis RedisStorage `yaml:"redis"`
}

type S3Storage struct {
	Bucket string `yaml:"bucket" example:"semlog-episodes"`
	Region string `yaml:"region" example:"eu-central-1"`
	// Custom endpoint for S3 compatible services
	Endpoint     string `yaml:"endpoint" example:"http://localhost:9000"`
	UsePathStyle bool   `yaml:"use_path_style" example:"true"`
	// Key prefix of uploaded documents
	Prefix          string `yaml:"prefix" example:"episodes/"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	// Upload timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"30" validate:"gte=0"`
}

type RedisStorage struct {
	Addr     string `yaml:"addr" example:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" example:"0" validate:"gte=0"`
	// Key prefix of stored documents
	Prefix string `yaml:"prefix" example:"semlog:episodes:"`
	// Expiration of stored documents in hours, 0 keeps them forever
	TTLHours int `yaml:"ttl_hours" example:"0" validate:"gte=0"`
}

type Log struct {
	// Console log level: debug, info, warn or error
	Level string `yaml:"level" example:"info" validate:"omitempty,oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	result := Config{
		Events: Events{
			Contact:            true,
			SupportedBy:        true,
			Grasp:              true,
			ManipulatorContact: true,
		},
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Episode.Template == "" {
		result.Episode.Template = "Default"
	}
	if result.Episode.Directory == "" {
		result.Episode.Directory = "SemLog"
	}
	if result.Episode.TaskID == "" {
		result.Episode.TaskID = "DefaultTaskId"
	}
	if result.Server.Addr == "" {
		result.Server.Addr = ":8080"
	}
	if result.Server.QueueSize == 0 {
		result.Server.QueueSize = 1024
	}
	if result.Storage.S3.TimeoutSeconds == 0 {
		result.Storage.S3.TimeoutSeconds = 30
	}
	if result.Storage.Redis.Prefix == "" {
		result.Storage.Redis.Prefix = "semlog:episodes:"
	}
	for i := range result.Hands {
		if result.Hands[i].UnpauseTrigger == 0 {
			result.Hands[i].UnpauseTrigger = 0.5
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
