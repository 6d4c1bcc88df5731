// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mtreilly/arc-bookshelf/internal/web"
)

func newWebCmd(a *app) *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web view",
		Long: `Start a local web page and JSON API for the shelf.

Port and bind address default to the web section of the config file.

Examples:
  arc-bookshelf serve
  arc-bookshelf serve --port 9000 --bind 0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Web.Port
			}
			if !cmd.Flags().Changed("bind") {
				bind = a.cfg.Web.Bind
			}
			addr := net.JoinHostPort(bind, strconv.Itoa(port))

			srv := &http.Server{
				Addr:              addr,
				Handler:           web.NewRouter(a.shelf, a.log, a.now, web.WithWriteLimit(a.cfg.Web.WriteRate, a.cfg.Web.WriteBurst)),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Starting arc-bookshelf web server on http://%s\n", addr)
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
			a.warnMemoryOnly(cmd)

			return serve(ctx, srv, a.log)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVarP(&bind, "bind", "b", "127.0.0.1", "Address to bind to")

	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down web server", zap.String("addr", srv.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
