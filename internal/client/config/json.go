package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/supportcase/internal/flagx"
)

// JsonConfig is the DTO for reading client settings from a JSON file.
type JsonConfig struct {
	ServerBaseURL string `json:"server_base_url"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags. No flag means no file is loaded. A file that cannot
// be read or parsed panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerBaseURL = c.ServerBaseURL
}
