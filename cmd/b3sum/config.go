package main

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"lukechampine.com/b3"
)

var config struct {
	Length  int  `toml:"length"`
	NoNames bool `toml:"no_names"`
	Tag     bool `toml:"tag"`
}

func loadConfig() error {
	user, err := user.Current()
	if err != nil {
		return err
	}
	_, err = toml.DecodeFile(filepath.Join(user.HomeDir, ".config", "b3", "b3sum.toml"), &config)
	if os.IsNotExist(err) {
		// if no config file found, proceed with empty config
		err = nil
	}
	if err != nil {
		return err
	}
	// set defaults
	if config.Length == 0 {
		config.Length = b3.OutLen
	}
	return nil
}
