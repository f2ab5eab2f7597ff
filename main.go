package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/Anaso-Internacia/anaso-site-api-models/config"
	"github.com/Anaso-Internacia/anaso-site-api-models/logger"
	"github.com/Anaso-Internacia/anaso-site-api-models/mcp"
	"github.com/Anaso-Internacia/anaso-site-api-models/scrape"
	"github.com/Anaso-Internacia/anaso-site-api-models/service"
	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	"github.com/davecgh/go-spew/spew"
	"github.com/foomo/contentserver/requests"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	stdioMode := flag.Bool("stdio", true, "Run in stdio mode when -http is not set")
	httpAddr := flag.String("http", "", "HTTP server address (e.g., ':8080')")
	configPath := flag.String("config", "", "YAML config file")
	decodeFile := flag.String("decode", "", "Decode a page payload file, print it and its decode report, then exit")
	dump := flag.Bool("dump", false, "With -decode, dump the decoded Go value instead of JSON")
	flag.Parse()

	if *decodeFile != "" {
		os.Exit(runDecode(os.Stdout, os.Stderr, *decodeFile, *dump))
	}

	transport, err := selectTransport(*httpAddr, *stdioMode)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	l, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	var serviceInstance service.Service
	if cfg.Site.ContentServerURL != "" {
		serviceInstance = service.NewService(l, siteSettings(cfg), httpClient, nil)
	}

	s := mcp.NewServer(l, httpClient, serviceInstance)

	if transport == transportHTTP {
		handler := mcp.NewMcpHTTPSSEServer(l, s, serviceInstance, httpClient, cfg.HTTP.Endpoint, &mcp.SSEServerConfig{
			KeepaliveInterval: cfg.SSE.KeepaliveInterval,
			BufferSize:        cfg.SSE.BufferSize,
			ClientTimeout:     cfg.SSE.ClientTimeout,
		})
		defer handler.Close()
		l.Info("starting MCP server", zap.String("addr", *httpAddr), zap.String("endpoint", cfg.HTTP.Endpoint))
		if err := http.ListenAndServe(*httpAddr, handler); err != nil {
			l.Fatal("http server failed", zap.Error(err))
		}
		return
	}

	l.Info("starting MCP server in stdio mode")
	if err := server.ServeStdio(s); err != nil {
		l.Fatal("stdio server failed", zap.Error(err))
	}
}

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

var errNoTransport = errors.New("no transport selected, use -stdio or -http")

// selectTransport picks HTTP when an address is given, stdio otherwise.
func selectTransport(httpAddr string, stdio bool) (string, error) {
	switch {
	case httpAddr != "":
		return transportHTTP, nil
	case stdio:
		return transportStdio, nil
	default:
		return "", errNoTransport
	}
}

func siteSettings(cfg *config.Config) service.SiteSettings {
	mimeTypes := make([]vo.MimeType, len(cfg.Site.MimeTypes))
	for i, mimeType := range cfg.Site.MimeTypes {
		mimeTypes[i] = vo.MimeType(mimeType)
	}
	return service.SiteSettings{
		Env: &requests.Env{
			Dimensions: []string{cfg.Site.Dimension},
			Groups:     cfg.Site.Groups,
		},
		BaseURL:          cfg.Site.BaseURL,
		PagePrefix:       cfg.Site.PagePrefix,
		ContentServerURL: cfg.Site.ContentServerURL,
		MimeTypes:        mimeTypes,
	}
}

// runDecode writes the decoded page to stdout and one line per decode issue to
// stderr. It returns the process exit code.
func runDecode(stdout, stderr io.Writer, path string, dump bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	page, report, err := stela.DecodePageReport(data)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", path, err)
		return 1
	}

	if dump {
		spew.Fdump(stdout, page)
	} else {
		out, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
	}

	for _, issue := range scrape.Issues(report) {
		detail := issue.Tag
		if detail == "" {
			detail = issue.Message
		}
		fmt.Fprintf(stderr, "%s\t%s\t%s\n", issue.Kind, issue.Path, detail)
	}
	return 0
}
