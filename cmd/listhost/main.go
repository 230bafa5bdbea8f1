// listhost serves eligibility list files from a directory for local development.
package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/testutils"
)

func main() {
	port := flag.String("port", "8090", "port to listen on")
	dir := flag.String("dir", ".", "directory with *.txt list files")
	flag.Parse()

	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))

	files := testutils.NewListFiles()
	n, err := loadDir(files, *dir)
	if err != nil {
		log.Crit("Failed to read list directory", "dir", *dir, "error", err)
	}
	if n == 0 {
		files.Set("/eligible.txt", testutils.TestAddrMember+"\n")
		files.Set("/eligible2.txt", testutils.TestAddrSecond+"\n")
		log.Warn("No list files found, serving test lists", "dir", *dir)
	}

	srv := &http.Server{
		Addr:              "127.0.0.1:" + *port,
		Handler:           files,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("List host listening", "addr", srv.Addr, "files", n)
	if err := srv.ListenAndServe(); err != nil {
		log.Crit("List host failed", "error", err)
	}
}

// loadDir registers every *.txt file in dir under /<filename>.
func loadDir(files *testutils.ListFiles, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0, err
	}
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return 0, err
		}
		files.Set("/"+filepath.Base(p), string(content))
	}
	return len(paths), nil
}
