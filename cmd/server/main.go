package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"docask/internal/app"
	"docask/internal/ask"
	"docask/internal/httputil"
)

// formOverhead is the slack allowed for multipart boundaries and the question
// and model fields on top of the document size ceiling.
const formOverhead = 1 << 20

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/ask", askHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Handle("/*", http.FileServer(http.Dir(deps.Config.StaticDir)))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		deps.Log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// askHandler adapts a multipart submission to the pipeline and writes its
// result as JSON: {"answer": ...} on success, {"error": ...} on failure.
func askHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		// Reject oversize bodies at the transport boundary, before the form
		// is even parsed.
		if r.ContentLength > maxFileSize+formOverhead {
			writeAskError(deps, w, ask.Upload(fmt.Sprintf("file too large (max %d bytes)", maxFileSize)))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+formOverhead)

		file, header, err := r.FormFile("markdownFile")
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeAskError(deps, w, ask.Upload(fmt.Sprintf("file too large (max %d bytes)", maxFileSize)))
				return
			}
			writeAskError(deps, w, ask.Validation("document file is required"))
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			writeAskError(deps, w, ask.IO("failed to read uploaded file", err))
			return
		}

		sub := ask.Submission{
			Question: r.FormValue("question"),
			Model:    r.FormValue("model"),
			Document: ask.Document{
				Filename:  header.Filename,
				MediaType: header.Header.Get("Content-Type"),
				Content:   content,
			},
		}

		answer, err := deps.Pipeline.Ask(r.Context(), sub)
		if err != nil {
			writeAskError(deps, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"answer": answer})
	}
}

// writeAskError normalizes any pipeline error into the uniform envelope:
// client faults get 400, everything else 500, and only the pipeline message
// reaches the caller.
func writeAskError(deps app.Deps, w http.ResponseWriter, err error) {
	httputil.WriteError(deps.Log, w, ask.HTTPStatus(err), ask.ClientMessage(err), err)
}
