// Command gomoku-server runs the gomoku game API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/gomoku/pkg/api"
)

const version = "0.1.0"

func main() {
	// Command line flags
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	maxSessions := flag.Int("max-sessions", api.DefaultMaxSessions, "Maximum concurrent game sessions")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Gomoku API Server v%s\n", version)
		os.Exit(0)
	}

	config := api.DefaultConfig()
	config.Host = *host
	config.Port = *port
	config.MaxSessions = *maxSessions
	config.ReadTimeout = *readTimeout
	config.WriteTimeout = *writeTimeout

	server := api.NewServer(config, version)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
