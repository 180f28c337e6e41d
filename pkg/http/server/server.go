package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int
	WebsocketPort int
	ProxyPort     int
	Timeout       time.Duration
}

// New. build the http.Server shared by the REST api and the websocket
// acceptor. isWebsocket only switches the listen port, the timeout knobs are
// the same viper keys for both.
func New(ctx context.Context, handler http.Handler, config Config, isWebsocket bool) *http.Server {
	port := config.Port
	if isWebsocket {
		port = config.WebsocketPort
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}
