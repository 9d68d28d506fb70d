package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"HobbyHop/internal/config"

	"go.uber.org/zap"
)

type Server struct {
	server          *http.Server
	shutDownTimeout time.Duration
	log             *zap.Logger
}

func New(conf config.HTTPServer, handler http.Handler, log *zap.Logger) *Server {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		Addr:         fmt.Sprintf("%v:%v", conf.BindAddress, conf.BindPort),
	}

	return &Server{
		server:          srv,
		shutDownTimeout: conf.ShutdownTimeout,
		log:             log,
	}
}

// Run 阻塞直到 ctx 被取消（通常来自信号），然后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("http server listening", zap.String("addr", s.server.Addr))

	errCh := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutDownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
