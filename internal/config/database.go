package config

import (
	"path"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/cvelens/cvelens/internal"
)

type database struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

func (cfg database) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("db.dir", path.Join(xdg.DataHome, internal.ApplicationName, "db"))
}

// Path returns the full path to the sqlite database file.
func (cfg database) Path() string {
	return path.Join(cfg.Dir, internal.DBFileName)
}
