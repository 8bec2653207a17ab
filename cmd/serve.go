package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/app"
	"github.com/Zachkp/folio/internal/site"
	"github.com/Zachkp/folio/internal/web"
)

const shutdownTimeout = 5 * time.Second

var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the portfolio and the admin panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Mode != "" {
			gin.SetMode(appConfig.Mode)
		}
		if serverPort != "" {
			appConfig.Port = serverPort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, appConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := site.NewView(ctx, a.Projects, a.Skills, a.About, a.Store)
		if err != nil {
			return err
		}
		defer view.Close()

		if !a.Mailer.Configured() {
			log.Println("WARNING: SMTP credentials not configured. Contact messages are stored but not mailed.")
		}

		srv := &http.Server{
			Addr:              ":" + appConfig.Port,
			Handler:           handlers.ProxyHeaders(compressExcept("/events", web.New(a, view, appConfig.SessionSecret).Handler())),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			log.Printf("Serving on http://localhost:%s", appConfig.Port)
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("Shutting down...")
		// ends open event streams so Shutdown is not held up by them
		view.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// compressExcept gzips every response but the event stream, which has to
// reach the browser one event at a time.
func compressExcept(path string, h http.Handler) http.Handler {
	compressed := handlers.CompressHandler(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == path {
			h.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}

func init() {
	serveCmd.Flags().StringVarP(&serverPort, "port", "p", "", "Port to listen on (overrides the configured port)")
	rootCmd.AddCommand(serveCmd)
}
