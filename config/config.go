package config

import (
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `yaml:"app"`
	API           API           `yaml:"api"`
	Upload        Upload        `yaml:"upload"`
	Queue         *RabbitMQ     `yaml:"rabbitmq"`
	Storage       *minio.Client `yaml:"storage"`
	StorageBucket string        `yaml:"minio_bucket"`
	Server        Server        `yaml:"server"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type API struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	// Origin is the public site origin embedded in certificate
	// verification URLs.
	Origin string `yaml:"origin"`
}

type Upload struct {
	ChunkSize int64 `yaml:"chunk_size"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
	Workers  int    `yaml:"workers"`
}

type RabbitMQ struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	Pass string `json:"pass"`
	Kind string `json:"kind"`
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	// The queue and object store are only needed by agent mode and
	// recording upload; plain CLI use works without them configured.
	var rabbitmq *RabbitMQ
	if viper.GetString("rabbitmq_host") != "" {
		rabbitmq = &RabbitMQ{
			Host: viper.GetString("rabbitmq_host"),
			Port: viper.GetInt("rabbitmq_port"),
			User: viper.GetString("rabbitmq_user"),
			Pass: viper.GetString("rabbitmq_pass"),
			Kind: viper.GetString("rabbitmq_kind"),
		}
	}

	var storage *minio.Client
	if viper.GetString("minio.url") != "" {
		storage, err = minio.New(viper.GetString("minio.url"), &minio.Options{
			Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
			Secure: viper.GetBool("minio.secure"),
		})
		if err != nil {
			return nil, err
		}
	}

	token := viper.GetString("api.token")
	if env := os.Getenv("COURSE_AGENT_TOKEN"); env != "" {
		token = env
	}

	return &Config{
		App: App{
			Environment: viper.GetString("app.environment"),
		},
		API: API{
			BaseURL: viper.GetString("api.base_url"),
			Token:   token,
			Origin:  viper.GetString("api.origin"),
		},
		Upload: Upload{
			ChunkSize: viper.GetInt64("upload.chunk_size"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
			Workers:  viper.GetInt("server.workers"),
		},
		Queue:         rabbitmq,
		Storage:       storage,
		StorageBucket: viper.GetString("minio.bucket"),
	}, nil
}
