// Command indexstub runs the in-memory indexing service stub locally.
// When a SyftBox data dir is given it writes the app.port and app.pid
// marker files so the fetcher's discovery handshake finds it.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"temponews/indexstub"
	"temponews/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	port := flag.Int("port", 0, "port to listen on (0 picks a free port)")
	dataDir := flag.String("data-dir", os.Getenv("SYFTBOX_DATA_DIR"), "SyftBox data dir for marker files (optional)")
	appName := flag.String("app-name", types.DefaultRAGAppName, "app name under <data-dir>/apps")
	flag.Parse()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	actualPort := listener.Addr().(*net.TCPAddr).Port

	if *dataDir != "" {
		markerDir := filepath.Join(*dataDir, "apps", *appName, "data")
		if err := writeMarkers(markerDir, actualPort); err != nil {
			log.Fatalf("write marker files: %v", err)
		}
		defer removeMarkers(markerDir)
		log.Printf("Marker files written under %s", markerDir)
	}

	r, _ := indexstub.NewRouter()
	log.Printf("Index stub listening on :%d", actualPort)

	go func() {
		if err := http.Serve(listener, r); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

func writeMarkers(dir string, port int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "app.port"), []byte(strconv.Itoa(port)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "app.pid"), []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func removeMarkers(dir string) {
	os.Remove(filepath.Join(dir, "app.port"))
	os.Remove(filepath.Join(dir, "app.pid"))
}
