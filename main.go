// @title Ctrl Alt Rock Voting API
// @version 1.0
// @description Backend API for judge scoring, audience voting and results of a live competition

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
package main

import (
	"strings"

	_ "github.com/tharindraj/ctrl-alt-rock-voting/docs"

	"github.com/spf13/viper"

	"github.com/tharindraj/ctrl-alt-rock-voting/api"
	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

func main() {
	logging.BoostrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()
	logging.Configure(config.LogLevel, config.LogFormat)

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
