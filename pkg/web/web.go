// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/outrigdev/boolsearch/pkg/base"
	"github.com/outrigdev/boolsearch/pkg/config"
	"github.com/outrigdev/boolsearch/pkg/filesearch"
	"github.com/outrigdev/boolsearch/pkg/gensearch"
	"github.com/outrigdev/boolsearch/pkg/panichandler"
	"github.com/outrigdev/boolsearch/pkg/resultfmt"
	"github.com/outrigdev/boolsearch/pkg/searchparser"
	"github.com/sirupsen/logrus"
)

// Header constants
const (
	CacheControlHeaderKey     = "Cache-Control"
	CacheControlHeaderNoCache = "no-cache"

	ContentTypeHeaderKey = "Content-Type"
	ContentTypeJson      = "application/json"
	ContentTypeHtml      = "text/html; charset=utf-8"
	ContentTypeText      = "text/plain; charset=utf-8"
)

const HttpReadTimeout = 5 * time.Second
const HttpWriteTimeout = 61 * time.Second
const HttpMaxHeaderBytes = 60000
const HttpTimeoutDuration = 60 * time.Second

type WebFnType = func(http.ResponseWriter, *http.Request)

type WebFnOpts struct {
	AllowCaching bool
	JsonErrors   bool
}

// SearchServer answers search requests for files under Root
type SearchServer struct {
	Root   string
	Config *config.Config
	Dev    bool // enables permissive CORS
}

func WriteJsonError(w http.ResponseWriter, errVal error) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(http.StatusOK)
	errMap := make(map[string]interface{})
	errMap["error"] = errVal.Error()
	barr, _ := json.Marshal(errMap)
	w.Write(barr)
}

func WriteJsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	rtnMap := make(map[string]interface{})
	rtnMap["success"] = true
	if data != nil {
		rtnMap["data"] = data
	}
	barr, err := json.Marshal(rtnMap)
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(barr)
}

// Simple health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJsonSuccess(w, map[string]interface{}{
		"status":  "ok",
		"version": base.VersionString(),
		"time":    time.Now().UnixMilli(),
	})
}

func WebFnWrap(opts WebFnOpts, fn WebFnType) WebFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if perr := panichandler.PanicHandler("web:"+r.URL.Path, recover()); perr != nil {
				if opts.JsonErrors {
					WriteJsonError(w, fmt.Errorf("internal server error"))
				} else {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}
		}()
		if !opts.AllowCaching {
			w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		}
		fn(w, r)
	}
}

// resolveRoot maps the optional "root" query parameter to a directory
// inside the server root; anything escaping it is rejected
func (ss *SearchServer) resolveRoot(relRoot string) (string, error) {
	if relRoot == "" {
		return ss.Root, nil
	}
	if filepath.IsAbs(relRoot) {
		return "", fmt.Errorf("root must be relative to the server root")
	}
	cleaned := filepath.Clean(filepath.FromSlash(relRoot))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("root %q escapes the server root", relRoot)
	}
	return filepath.Join(ss.Root, cleaned), nil
}

// dirOptions overlays request parameters on the server config
func (ss *SearchServer) dirOptions(r *http.Request) (filesearch.DirOptions, error) {
	cfg := ss.Config
	qv := r.URL.Query()
	scopeStr := cfg.Scope
	if s := qv.Get("scope"); s != "" {
		scopeStr = s
	}
	scope, err := gensearch.ParseScope(scopeStr)
	if err != nil {
		return filesearch.DirOptions{}, err
	}
	caseSensitive := cfg.CaseSensitive
	if c := qv.Get("case"); c != "" {
		caseSensitive, err = strconv.ParseBool(c)
		if err != nil {
			return filesearch.DirOptions{}, fmt.Errorf("invalid case parameter %q", c)
		}
	}
	include := cfg.Include
	if inc := qv.Get("include"); inc != "" {
		include = inc
	}
	exclude := cfg.Exclude
	if exc := qv.Get("exclude"); exc != "" {
		exclude = exc
	}
	return filesearch.DirOptions{
		Options: filesearch.Options{
			CaseSensitive: caseSensitive,
			Scope:         scope,
			Workers:       cfg.Workers,
		},
		Include:     include,
		Exclude:     exclude,
		MaxFileSize: cfg.MaxFileSize,
	}, nil
}

func (ss *SearchServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteJsonError(w, fmt.Errorf("please enter a search query"))
		return
	}
	root, err := ss.resolveRoot(r.URL.Query().Get("root"))
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	switch format {
	case "", config.FormatJson, config.FormatText, config.FormatFull, config.FormatHtml, config.FormatVimgrep:
	default:
		WriteJsonError(w, fmt.Errorf("invalid format %q", format))
		return
	}
	opts, err := ss.dirOptions(r)
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	res, err := filesearch.SearchDir(r.Context(), root, query, opts)
	if err != nil {
		if errors.Is(err, filesearch.ErrNoRoot) {
			err = fmt.Errorf("no folder to search: %w", err)
		}
		WriteJsonError(w, err)
		return
	}

	if format == "" || format == config.FormatJson {
		WriteJsonSuccess(w, res)
		return
	}
	if format == config.FormatHtml {
		w.Header().Set(ContentTypeHeaderKey, ContentTypeHtml)
	} else {
		w.Header().Set(ContentTypeHeaderKey, ContentTypeText)
	}
	fmtOpts := resultfmt.FormatOpts{BaseDir: ss.Root, MaxMatchesPerFile: ss.Config.MaxMatchesPerFile}
	if err := resultfmt.Write(w, format, query, res.Results, fmtOpts); err != nil {
		logrus.WithError(err).WithField("format", format).Warn("[web] error writing results")
	}
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	parser := searchparser.NewParser(query)
	node, err := parser.Parse()
	if err != nil {
		WriteJsonError(w, err)
		return
	}
	WriteJsonSuccess(w, map[string]interface{}{
		"tree":    node.String(),
		"pretty":  searchparser.PrettyPrintMultiline(node),
		"terms":   gensearch.PositiveTerms(node),
		"ignored": searchparser.TokensToString(parser.Unparsed()),
	})
}

// MakeRouter builds the route table without any logging or CORS wrappers
func MakeRouter(ss *SearchServer) *mux.Router {
	gr := mux.NewRouter()
	jsonOpts := WebFnOpts{AllowCaching: false, JsonErrors: true}
	gr.HandleFunc("/health", WebFnWrap(jsonOpts, handleHealth)).Methods(http.MethodGet)
	gr.HandleFunc("/api/search", WebFnWrap(jsonOpts, ss.handleSearch)).Methods(http.MethodGet)
	gr.HandleFunc("/api/parse", WebFnWrap(jsonOpts, handleParse)).Methods(http.MethodGet)
	return gr
}

func MakeTCPListener(serviceName string, addr string) (net.Listener, error) {
	if addr == "" {
		addr = "127.0.0.1:0" // Use any available port
	}
	rtn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error creating listener at %v: %v", addr, err)
	}
	logrus.Infof("Server [%s] listening on %s", serviceName, rtn.Addr())
	return rtn, nil
}

// RunWebServer blocks until ctx is cancelled or the server fails
func RunWebServer(ctx context.Context, listener net.Listener, ss *SearchServer) error {
	var handler http.Handler = MakeRouter(ss)
	handler = http.TimeoutHandler(handler, HttpTimeoutDuration, "Timeout")
	if ss.Dev {
		handler = handlers.CORS(handlers.AllowedOrigins([]string{"*"}))(handler)
	}
	logWriter := logrus.StandardLogger().WriterLevel(logrus.InfoLevel)
	defer logWriter.Close()
	handler = handlers.LoggingHandler(logWriter, handler)

	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        handler,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
