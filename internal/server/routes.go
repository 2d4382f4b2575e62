package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("GET /{$}", s.app.PageHandler.ServePage("editor.html", "editor"))
	mux.HandleFunc("GET /preview", s.app.PageHandler.ServePage("preview.html", "preview"))
	mux.HandleFunc("GET /s/{id}", s.app.ShareHandler.Page)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// Live updates and key events from the editor front-end
	mux.Handle("/ws", s.app.Hub)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Document API
	docs := s.app.DocumentHandler
	mux.HandleFunc("GET /api/document", docs.State)
	mux.HandleFunc("PUT /api/document", docs.Update)
	mux.HandleFunc("POST /api/document/undo", docs.Undo)
	mux.HandleFunc("POST /api/document/redo", docs.Redo)
	mux.HandleFunc("POST /api/document/save", docs.Save)
	mux.HandleFunc("POST /api/document/reset", docs.Reset)
	mux.HandleFunc("POST /api/document/full-reset", docs.FullReset)
	mux.HandleFunc("POST /api/document/mode", docs.SwitchMode)
	mux.HandleFunc("POST /api/document/entries", docs.Entries)
	mux.HandleFunc("GET /api/recent", docs.Recent)
	mux.HandleFunc("POST /api/recent/restore", docs.RestoreRecent)
	mux.HandleFunc("POST /api/recent/delete", docs.DeleteRecent)

	// Keyboard dispatch fallback for clients without a websocket
	mux.Handle("/api/keys", s.app.KeyHandler)

	// Share, export and market data
	mux.HandleFunc("POST /api/share", s.app.ShareHandler.Publish)
	mux.HandleFunc("GET /api/share/{id}", s.app.ShareHandler.Resolve)
	if s.app.ExportHandler != nil {
		mux.Handle("/api/export", s.app.ExportHandler)
	}
	if s.app.SymbolsHandler != nil {
		mux.HandleFunc("GET /api/symbols", s.app.SymbolsHandler.Lookup)
		mux.HandleFunc("POST /api/marketdata/refresh", s.app.SymbolsHandler.Refresh)
	}

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
