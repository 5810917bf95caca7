package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/pprof"

	"github.com/julienschmidt/httprouter"
)

// monitorHandler writes runtime information to the response.
func (cfg Config) monitorHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m := new(runtime.MemStats)
	runtime.ReadMemStats(m)
	p := pprof.Lookup("goroutine")
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	writeMemoryStats(w, m)
	fmt.Fprintln(w)
	cfg.writeGoroutineExpectations(w)
	fmt.Fprintln(w)
	writeGoroutineStackTraces(w, p)
}

// writeMemoryStats writes the memory runtime statistics of the server.
func writeMemoryStats(w io.Writer, m *runtime.MemStats) {
	fmt.Fprintln(w, "--- Memory Stats ---")
	fmt.Fprintln(w, "Alloc (bytes on heap)", m.Alloc)
	fmt.Fprintln(w, "TotalAlloc (total heap size)", m.TotalAlloc)
	fmt.Fprintln(w, "Sys (bytes used to run server)", m.Sys)
	fmt.Fprintln(w, "Live object count (Mallocs - Frees)", m.Mallocs-m.Frees)
}

// writeGoroutineExpectations writes a message about the goroutines of an idle server.
func (cfg Config) writeGoroutineExpectations(w io.Writer) {
	expectations := []string{
		"a goroutine to run the main procedure",
		"a goroutine listening for interrupt/termination signals so the server can stop gracefully",
		"a goroutine to run the http server",
		"a goroutine to run the lobby",
		"a goroutine to check the timers of games",
		"a goroutine to write profiling information about goroutines",
	}
	if cfg.hasACME() {
		expectations = append(expectations, "a goroutine to answer ACME challenges")
	}
	fmt.Fprintln(w, "--- Goroutine Expectations ---")
	fmt.Fprintf(w, "%d goroutines are expected on an idling server.\n", len(expectations))
	for _, e := range expectations {
		fmt.Fprintln(w, "*", e)
	}
	fmt.Fprintln(w, "Each websocket should have four (4) goroutines: the request handler, one to read, one to write, and one to wait for both.")
	fmt.Fprintln(w, "Each websocket also has a goroutine that removes its listener from the lobby when the websocket closes.")
}

// writeGoroutineStackTraces writes the goroutine runtime profile's stack traces.
func writeGoroutineStackTraces(w io.Writer, p *pprof.Profile) {
	fmt.Fprintln(w, "--- Goroutine Stack Traces ---")
	p.WriteTo(w, 1)
}
