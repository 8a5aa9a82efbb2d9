// Package autoload initializes the global logger from LOG_* environment
// variables on import:
//
//	import _ "github.com/tanpawarit/ecom-support-agent/pkg/logger/autoload"
package autoload

import (
	"github.com/kelseyhightower/envconfig"

	logx "github.com/tanpawarit/ecom-support-agent/pkg/logger"
)

func init() {
	conf := *logx.DefaultConfig
	if err := envconfig.Process("LOG", &conf); err != nil {
		conf = *logx.DefaultConfig
	}
	logx.Init(conf)
}
