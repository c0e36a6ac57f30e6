//go:build profile

// Package profiler records named spans into a fixed ring and dumps them
// as a speedscope "evented" profile. Enabled with the "profile" build
// tag; the default build compiles to no-ops.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once (e.g. on app start) with a capacity in spans.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	evrb.init(capacity)
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	if !evrb.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	now := time.Now().UnixNano()
	evrb.push(evEntry{AtNS: now, FrameID: fid, Open: true})
	return func() {
		end := time.Now().UnixNano()
		// Guarantee end >= start even when the clock ties.
		if end < now {
			end = now
		}
		evrb.push(evEntry{AtNS: end, FrameID: fid, Open: false})
	}
}

// Dump writes the recorded spans to a speedscope JSON file in the
// temp directory and returns its path.
func Dump() (string, error) {
	evs := evrb.snapshot()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no events to dump")
	}
	path := filepath.Join(os.TempDir(), "ember.profile.speedscope.json")
	if err := writeSpeedscope(evs, path); err != nil {
		return "", err
	}
	return path, nil
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }

func NumCPU() int { return runtime.NumCPU() }

// ---------- event ring ----------

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

type evRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot preserves write order; no sorting later.
func (r *evRing) snapshot() []evEntry {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var evrb evRing

// ---------- string interner ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

// ---------- speedscope writer ----------

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "nanoseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	Frame int    `json:"frame"`
	At    int64  `json:"at"`
}

func writeSpeedscope(evs []evEntry, path string) error {
	muFrames.Lock()
	names := make([]ssFrame, len(frames))
	for i, n := range frames {
		names[i] = ssFrame{Name: n}
	}
	muFrames.Unlock()

	start := evs[0].AtNS
	end := evs[len(evs)-1].AtNS

	events := make([]ssEvent, 0, len(evs))
	for _, e := range evs {
		typ := "C"
		if e.Open {
			typ = "O"
		}
		events = append(events, ssEvent{Type: typ, Frame: e.FrameID, At: e.AtNS - start})
	}

	file := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: names},
		Profiles: []ssProfile{{
			Type:       "evented",
			Name:       "ember",
			Unit:       "nanoseconds",
			StartValue: 0,
			EndValue:   end - start,
			Events:     events,
		}},
		Exporter: "ember-profiler",
		Name:     "ember",
	}

	b, err := json.Marshal(&file)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
