// Package config provides configuration parsing for toaster.
//
// The configuration lives in toaster.json, toaster.toml or toaster.yaml
// in the working directory. This package handles loading, saving, and
// validating it.
//
// # Configuration File Structure
//
//	{
//	  "limit": 3,
//	  "removeDelay": "5s",
//	  "duration": "4s",
//	  "ids": "counter",
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "toaster"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "toaster"
//	  }
//	}
//
// The same keys are used in TOML and YAML.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Remove delay:", cfg.RemoveDelayDuration())
package config
