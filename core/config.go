package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Catalog snapshot drivers
const (
	SnapshotFile   = "file"
	SnapshotRedis  = "redis"
	SnapshotMemory = "memory"
)

// Roster drivers
const (
	RosterPostgres = "postgres"
	RosterMemory   = "memory"
)

type (
	Config struct {
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		SecretKey        string
		AdminEmails      []string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Catalog  CatalogConfig
		Roster   RosterConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugAddress       string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	CatalogConfig struct {
		Driver      string
		SnapshotKey string
		FilePath    string
		RedisURL    string
	}

	RosterConfig struct {
		Driver string
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
)

func (db DatabaseConfig) Address() string {
	return db.Host + ":" + db.Port
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "TeacherPoli")
	v.SetDefault("secretKey", "k9#vq2!t@x7-lm4&p0zr$u8w+ey3=hc6")
	v.SetDefault("adminEmails", []string{"admin@teacherpoli.com"})
	v.SetDefault("defaultFromEmail", "TeacherPoli <noreply@teacherpoli.com>")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 24*time.Hour)

	v.SetDefault("catalog.driver", SnapshotFile)
	v.SetDefault("catalog.snapshotKey", "teacherpoli_bonus_data")
	v.SetDefault("catalog.filePath", filepath.Join("data", "teacherpoli_bonus_data.json"))
	v.SetDefault("catalog.redisURL", "redis://localhost:6379/0")

	v.SetDefault("roster.driver", RosterMemory)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "teacherpoli")
	v.SetDefault("database.user", "teacherpoli")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)
}

// NewConfig reads the configuration of the current ENV (DEV by default, TEST, QA, PROD).
// Values come from `<ENV>_`-prefixed environment variables, optionally loaded from
// config/.env.<env>, falling back to defaults.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v := viper.New()
	setDefaults(v)
	if env == "TEST" {
		v.Set("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}

	conf := &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		AdminEmails:      v.GetStringSlice("adminEmails"),
		DefaultFromEmail: *from,
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Address:            v.GetString("server.address"),
			DebugAddress:       v.GetString("server.debugAddress"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Catalog: CatalogConfig{
			Driver:      CleanString(v.GetString("catalog.driver"), true),
			SnapshotKey: v.GetString("catalog.snapshotKey"),
			FilePath:    v.GetString("catalog.filePath"),
			RedisURL:    v.GetString("catalog.redisURL"),
		},
		Roster: RosterConfig{
			Driver: CleanString(v.GetString("roster.driver"), true),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
	}

	switch conf.Catalog.Driver {
	case SnapshotFile, SnapshotRedis, SnapshotMemory:
	default:
		return nil, errors.Errorf("unknown catalog driver %q", conf.Catalog.Driver)
	}
	switch conf.Roster.Driver {
	case RosterPostgres, RosterMemory:
	default:
		return nil, errors.Errorf("unknown roster driver %q", conf.Roster.Driver)
	}
	return conf, nil
}

// configDir is where the .env.<env> files live; CONFIG_DIR overrides the default "config".
func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "config"
}
