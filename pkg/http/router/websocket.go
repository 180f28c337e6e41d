package router

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/mailru/easygo/netpoll"
	"github.com/ridelens/ridelens/pkg/concurrent"
	"github.com/ridelens/ridelens/pkg/http/router/controllers"
	http_server "github.com/ridelens/ridelens/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	analyticsService controllers.AnalyticsService,
	useRateLimit bool, errChan chan error,
) {
	var err error

	wsRouter := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	wsRouter.GET("/doc/*any", swaggerHandler)

	wsRouter.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels, Limit)
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(api.log), Labels)
	}
	mainMwChain := alice.New(mwChain...).Then(wsRouter)
	srv := http_server.New(ctx, mainMwChain, config, true)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		errChan <- err
	}
	api.log.Info(fmt.Sprintf("live analyzer websocket API run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
	}

	api.pool = concurrent.NewGoroutinePool(15, 10)

	api.hub = controllers.NewHub(api.pool, analyticsService)

	api.pool.Spawn(10)
	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(conn netpoll.Event) {
		// the listener fd sits in the epoll interest list, netpoll calls back
		// here whenever a connection is ready to accept.
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(1000*time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
			return
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			// goroutine pool saturated for 1s or the accept itself failed,
			// cool the acceptor down before retrying
			if err != concurrent.ErrScheduleTimeout {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else {
				api.log.Sugar().Fatalf("accept error: %v", err)
			}
		}

	})

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	<-sig

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.pool.Close()

	log.Println("websocket server stopped")

	return
}

// handle. upgrade the tcp connection to a websocket and register its fd with
// epoll so idle clients cost no goroutine stack.
// ref: https://sergey.kamardin.org/articles/million-websockets-and-go/
func (api *API) handle(conn net.Conn) {

	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection name ", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection name ", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end, drop the fd from the interest list
			api.log.Error("user disconnected from websocket server")

			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		// spawn goroutine from goroutine pool to handle the request
		api.pool.Schedule(func() {
			// analyze the streamed telemetry & send the result back to the user
			err := user.Analyze()
			if err != nil {
				api.log.Error("error analyzing telemetry", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
			return
		})

	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
