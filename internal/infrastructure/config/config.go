package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from the environment (and from a
// .env file loaded by godotenv at startup).
type Config struct {
	Port    string
	GinMode string

	AWS    AWSConfig
	Tables Tables

	JWTSecret string
	JWTTTL    time.Duration

	Admin AdminSeed
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

// Tables holds the DynamoDB table names.
type Tables struct {
	Clients       string
	Orders        string
	Factors       string
	Services      string
	ServiceGroups string
	Users         string
	Counters      string
}

// AdminSeed is the first admin account created by the seed command.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

var defaults = map[string]any{
	"port":                  "8080",
	"gin_mode":              "debug",
	"aws_region":            "us-east-1",
	"aws_access_key_id":     "local",
	"aws_secret_access_key": "local",
	"dynamodb_endpoint":     "",
	"clients_table":         "clients",
	"orders_table":          "orders",
	"factors_table":         "factors",
	"services_table":        "services",
	"service_groups_table":  "service_groups",
	"users_table":           "users",
	"counters_table":        "counters",
	"jwt_secret":            "dev-secret-change-in-production",
	"jwt_ttl":               "12h",
	"admin_username":        "Administrador",
	"admin_email":           "admin@exemplo.com",
	"admin_password":        "",
}

// Load builds a Config from environment variables. Keys are the upper-case
// form of the defaults above (PORT, ORDERS_TABLE, JWT_TTL, ...).
func Load() *Config {
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func FromViper(v *viper.Viper) *Config {
	ttl := v.GetDuration("jwt_ttl")
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Config{
		Port:    v.GetString("port"),
		GinMode: v.GetString("gin_mode"),
		AWS: AWSConfig{
			Region:           v.GetString("aws_region"),
			AccessKeyID:      v.GetString("aws_access_key_id"),
			SecretAccessKey:  v.GetString("aws_secret_access_key"),
			DynamoDBEndpoint: v.GetString("dynamodb_endpoint"),
		},
		Tables: Tables{
			Clients:       v.GetString("clients_table"),
			Orders:        v.GetString("orders_table"),
			Factors:       v.GetString("factors_table"),
			Services:      v.GetString("services_table"),
			ServiceGroups: v.GetString("service_groups_table"),
			Users:         v.GetString("users_table"),
			Counters:      v.GetString("counters_table"),
		},
		JWTSecret: v.GetString("jwt_secret"),
		JWTTTL:    ttl,
		Admin: AdminSeed{
			Username: v.GetString("admin_username"),
			Email:    v.GetString("admin_email"),
			Password: v.GetString("admin_password"),
		},
	}
}
