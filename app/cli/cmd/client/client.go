package client

import (
	"os"

	"ingest/pkg/client"
)

const (
	// EnvServer is the env variable holding the server address when no flag is given.
	EnvServer = "INGEST_SERVER"

	defaultServer = "http://127.0.0.1:8080"
)

// Server is the address of the server, set from the --server flag.
var Server string

// New returns a new ingest pipeline client
func New() (client.Client, error) {
	server := Server
	if server == "" {
		server = os.Getenv(EnvServer)
	}
	if server == "" {
		server = defaultServer
	}
	return client.NewClient(server)
}
