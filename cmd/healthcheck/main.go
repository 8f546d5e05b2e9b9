package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"
)

const defaultPort = "5173"

func main() {
	os.Exit(check())
}

func check() int {
	addr := targetAddr(os.Getenv("SCICO_HOST"), os.Getenv("SCICO_PORT"), os.Getenv("PORT"))

	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/api/v1/health", addr), nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

// targetAddr resolves the server address the same way the server does: PORT
// wins over SCICO_PORT. It connects to loopback rather than the bind-all
// address, since the healthcheck runs next to the server.
func targetAddr(host, port, portOverride string) string {
	if portOverride != "" {
		port = portOverride
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		port = defaultPort
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
