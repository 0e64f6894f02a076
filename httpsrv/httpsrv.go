// A small wrapper around the library HTTP server: start it on a port, stop
// it in an orderly way when the daemon is told to shut down.

package httpsrv

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"qview/common"
)

const serverShutdownTimeoutSec = 10

type Server struct {
	verbose bool
	port    int
	failed  func(error)
	stop    chan bool
	server  *http.Server
}

// New creates a server that will listen on port.  It will call failed if the
// server exits with a failure.  The server is not started by this.
func New(verbose bool, port int, failed func(error)) *Server {
	return &Server{
		verbose: verbose,
		port:    port,
		failed:  failed,
		stop:    make(chan bool),
	}
}

// Start blocks the current goroutine until the server exits, so typical
// usage is `go s.Start()`.  To force the server down, call s.Stop().
func (s *Server) Start() {
	if s.verbose {
		common.Log.Infof("Listening on port %d", s.port)
	}
	s.server = &http.Server{Addr: fmt.Sprintf(":%d", s.port)}
	err := s.server.ListenAndServe()
	if err != nil {
		if err != http.ErrServerClosed {
			common.Log.Error(err.Error())
			common.Log.Error("SERVER NOT RUNNING")
			if s.failed != nil {
				s.failed(err)
			}
		} else {
			common.Log.Info(err.Error())
		}
	}
	s.stop <- true
}

// Stop shuts the server down and waits for Start to return.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeoutSec*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		common.Log.Warning(err.Error())
	}
	<-s.stop
}
