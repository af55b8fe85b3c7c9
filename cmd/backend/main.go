package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"newtonfractal"
	"newtonfractal/sink"
)

type renderRequest struct {
	N          int     `json:"n"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Iterations int     `json:"iterations"`
	Tolerance  float64 `json:"tolerance"`
	Gamma      float64 `json:"gamma"`
	Mode       int     `json:"mode"`
}

type progressPayload struct {
	Rows  int `json:"rows"`
	Total int `json:"total"`
}

func qf(r *http.Request, key string, def float64) float64 {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func qi(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// config fills unset fields with the render defaults, mirroring the CLI.
func (req renderRequest) config() (newtonfractal.Config, newtonfractal.ColorMode) {
	cfg := newtonfractal.DefaultConfig()
	if req.N != 0 {
		cfg.N = req.N
	}
	if req.Width != 0 {
		cfg.Width = req.Width
	}
	if req.Height != 0 {
		cfg.Height = req.Height
	}
	if req.Iterations != 0 {
		cfg.MaxIter = req.Iterations
	}
	if req.Tolerance != 0 {
		cfg.Tolerance = req.Tolerance
	}
	if req.Gamma != 0 {
		cfg.Gamma = req.Gamma
	}

	mode := newtonfractal.ColorMode(req.Mode)
	if mode < newtonfractal.ColorRootHSV || mode > newtonfractal.ColorIterGray {
		mode = newtonfractal.ColorRootHSV
	}
	return cfg, mode
}

func writePNG(w http.ResponseWriter, cfg newtonfractal.Config, mode newtonfractal.ColorMode) {
	rgb := newtonfractal.Render(cfg, mode, nil)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	if err := sink.Encode(w, sink.FormatPNG, cfg.Width, cfg.Height, rgb); err != nil {
		log.Println("encode:", err)
	}
}

func newtonGETHandler(w http.ResponseWriter, r *http.Request) {
	req := renderRequest{
		N:          qi(r, "n", 0),
		Width:      qi(r, "width", 0),
		Height:     qi(r, "height", 0),
		Iterations: qi(r, "iterations", 0),
		Tolerance:  qf(r, "tolerance", 0),
		Gamma:      qf(r, "gamma", 0),
		Mode:       qi(r, "mode", 0),
	}

	cfg, mode := req.config()
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writePNG(w, cfg, mode)
}

func newtonPOSTHandler(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	cfg, mode := req.config()
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writePNG(w, cfg, mode)
}

// newtonWSHandler streams render progress: the client sends one JSON
// renderRequest, receives progress frames as rows complete, then the
// finished PNG as a single binary message.
func newtonWSHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()

	var req renderRequest
	if err := wsjson.Read(ctx, c, &req); err != nil {
		log.Println("ws read:", err)
		return
	}

	cfg, mode := req.config()
	if err := cfg.Validate(); err != nil {
		_ = wsjson.Write(ctx, c, map[string]string{"error": err.Error()})
		return
	}

	// Workers report rows concurrently; funnel the latest count through a
	// channel so this handler stays the only websocket writer.
	updates := make(chan int, 64)
	result := make(chan []byte, 1)
	go func() {
		rgb := newtonfractal.Render(cfg, mode, func(done, _ int) {
			select {
			case updates <- done:
			default:
			}
		})
		close(updates)
		result <- rgb
	}()

	for rows := range updates {
		if err := wsjson.Write(ctx, c, progressPayload{Rows: rows, Total: cfg.Height}); err != nil {
			log.Println("ws write:", err)
			return
		}
	}

	rgb := <-result
	var buf bytes.Buffer
	if err := sink.Encode(&buf, sink.FormatPNG, cfg.Width, cfg.Height, rgb); err != nil {
		log.Println("encode:", err)
		return
	}
	if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
		log.Println("ws write:", err)
		return
	}

	_ = c.Close(websocket.StatusNormalClosure, "done")
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/newton", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			newtonPOSTHandler(w, r)
			return
		}
		newtonGETHandler(w, r)
	})
	mux.HandleFunc("/api/newton/ws", newtonWSHandler)

	log.Println("listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", withCORS(mux)))
}
