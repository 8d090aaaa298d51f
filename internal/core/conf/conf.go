package conf

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-bizcore/bizcore/pkg/cache"
	"github.com/go-bizcore/bizcore/pkg/database"
	"github.com/go-bizcore/bizcore/pkg/http"
	"github.com/go-bizcore/bizcore/pkg/log"
)

/**
 * @file: conf.go
 * @description: application configuration
 */

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Staff    Staff
}

// Staff 员工生命周期相关配置
type Staff struct {
	// InvitationTTLHours 邀请有效期(小时)，过期惰性判定
	InvitationTTLHours int
	// AutoCloseSessionOnDeactivate 停用员工关系时是否自动结束其进行中的时段
	AutoCloseSessionOnDeactivate bool
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load conf file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile load conf file
func LoadConfigFile(confDir string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confDir)
	config.AddConfigPath("./conf.d")
	config.SetConfigName("config")
	config.SetConfigType("toml")
	config.SetDefault("staff.invitationttlhours", 48)
	config.SetDefault("staff.autoclosesessionondeactivate", false)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("The configuration changes, re-analyze the configuration file: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	fmt.Printf("[Init] config file path: %s\n", confDir)

	return cfg, nil
}

func GetString(key string) string {
	return viper.GetString(key)
}
