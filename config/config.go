package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	// Driver selects the room directory backend: "gorm" (default) or "pq".
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig tunes the session engine. All fields have defaults so a
// config file only listing server and database sections still works.
type GameConfig struct {
	RoundSeconds          int `mapstructure:"round_seconds"`
	RoundsPerPlayer       int `mapstructure:"rounds_per_player"`
	NextRoundDelaySeconds int `mapstructure:"next_round_delay_seconds"`
	MinConnectedPlayers   int `mapstructure:"min_connected_players"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("database.driver", "gorm")
	viper.SetDefault("game.round_seconds", 60)
	viper.SetDefault("game.rounds_per_player", 3)
	viper.SetDefault("game.next_round_delay_seconds", 3)
	viper.SetDefault("game.min_connected_players", 2)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
