package config

import "os"

func IsDebug() bool {
	return os.Getenv("RESEARCHBOT_DEBUG") == "1"
}
