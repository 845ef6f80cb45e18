package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/TingluoHuang/music-player/config"
	"github.com/TingluoHuang/music-player/keymap"
	"github.com/TingluoHuang/music-player/midi"
	"github.com/TingluoHuang/music-player/model"
	"github.com/TingluoHuang/music-player/pipeline"
	"github.com/TingluoHuang/music-player/song"
	"github.com/TingluoHuang/music-player/util"
)

var serveFlags struct {
	addr  string
	debug bool
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveFlags.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the converter over HTTP",
	Long:  `Serves the converter over HTTP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// songStore keeps converted songs by id, with a write-through copy on
// disk under the song dir.
type songStore struct {
	mu    sync.RWMutex
	songs map[string]model.Song
	dir   string
}

func newSongStore(dir string) *songStore {
	return &songStore{songs: make(map[string]model.Song), dir: dir}
}

func (st *songStore) put(s model.Song) (string, error) {
	id := uuid.New().String()
	if st.dir != "" {
		if err := os.MkdirAll(st.dir, 0o755); err != nil {
			return "", err
		}
		if err := song.Save(filepath.Join(st.dir, id+".json"), s); err != nil {
			return "", err
		}
	}
	st.mu.Lock()
	st.songs[id] = s
	st.mu.Unlock()
	return id, nil
}

func (st *songStore) get(id string) (model.Song, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.songs[id]
	return s, ok
}

func (st *songStore) ids() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := util.GetKeys(st.songs)
	sort.Strings(ids)
	return ids
}

// Server is the HTTP surface around the conversion pipeline.
type Server struct {
	store  *songStore
	logger *slog.Logger
}

func NewServer(dir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: newSongStore(dir), logger: logger}
}

// Router wires all routes. Exposed so tests can drive the handlers
// without a listener.
func (srv *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", srv.handleConvert).Methods("POST")
	router.HandleFunc("/songs", srv.handleListSongs).Methods("GET")
	router.HandleFunc("/songs/{id}", srv.handleGetSong).Methods("GET")
	router.HandleFunc("/keymap", srv.handleKeymap).Methods("GET")
	return router
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// configFromQuery starts at the defaults and applies any overrides
// present in the request.
func configFromQuery(r *http.Request) (config.Config, error) {
	cfg := config.Default()
	q := r.URL.Query()

	ints := map[string]*int{
		"baseOctave": &cfg.BaseOctave,
		"maxKeys":    &cfg.MaxSimultaneousKeys,
		"rangeMin":   &cfg.RangeMin,
		"rangeMax":   &cfg.RangeMax,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, fmt.Errorf("bad %v: %v", name, v)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"grid":           &cfg.QuantizationGrid,
		"mergeTolerance": &cfg.MergeTolerance,
		"minGap":         &cfg.MinNoteGap,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, fmt.Errorf("bad %v: %v", name, v)
			}
			*dst = f
		}
	}

	return cfg, cfg.Validate()
}

func (srv *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	cfg, err := configFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body must be a midi file")
		return
	}

	parsed, err := midi.Parse(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	tracks, bpm := midi.ExtractTracks(parsed)

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "untitled"
	}
	trackIndex := -1
	if v := r.URL.Query().Get("track"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad track: "+v)
			return
		}
		trackIndex = n
	}

	s, err := pipeline.Convert(tracks, pipeline.Options{Title: title, BPM: bpm, TrackIndex: trackIndex}, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := srv.store.put(s)
	if err != nil {
		srv.logger.Error("could not store song", "err", err)
		writeError(w, http.StatusInternalServerError, "could not store song")
		return
	}

	srv.logger.Info("converted song", "id", id, "title", s.Title, "chords", len(s.Chords))
	writeJSON(w, model.ConvertResponse{ID: id, Song: s})
}

func (srv *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.SongListResponse{IDs: srv.store.ids()})
}

func (srv *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s, ok := srv.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no song with id "+id)
		return
	}
	writeJSON(w, s)
}

func (srv *Server) handleKeymap(w http.ResponseWriter, r *http.Request) {
	km := keymap.New(config.Default().BaseOctave)
	entries := make([]model.KeymapEntry, 0, len(km.Pitches()))
	for _, p := range km.Pitches() {
		key, _ := km.KeyOf(p)
		entries = append(entries, model.KeymapEntry{Pitch: p, Name: km.NameOf(p), Key: key.String()})
	}
	writeJSON(w, entries)
}

func serve() error {
	initLogger(serveFlags.debug)

	srv := NewServer(config.GetSongDir(), slog.Default())
	handler := cors.Default().Handler(srv.Router())

	slog.Info("listening", "addr", serveFlags.addr, "songDir", config.GetSongDir())
	return http.ListenAndServe(serveFlags.addr, handler)
}
