// Command rdfadmin loads RDF files into an sql database and serves an admin interface to browse them.
package main

// cspell:words nquads

import (
	"context"
	"errors"
	"flag"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/FAU-CDI/rdfadmin"
	"github.com/FAU-CDI/rdfadmin/internal/admin"
	"github.com/FAU-CDI/rdfadmin/internal/filter"
	"github.com/FAU-CDI/rdfadmin/internal/loader"
	"github.com/FAU-CDI/rdfadmin/internal/status"
	"github.com/FAU-CDI/rdfadmin/internal/store"
	"github.com/pkg/browser"
	"github.com/pkg/profile"
	"github.com/tkw1536/pkglib/perf"
)

var errBothSqliteAndMysql = errors.New("both -sqlite and -mysql were given")

var handler = &admin.Admin{
	Status: status.NewStatus(os.Stderr),
}

const usage = "Usage: rdfadmin [-help] [...flags] /path/to/file.nq|/path/to/directory..."

func main() {
	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}
	if debugServer != "" {
		go listenDebug()
	}

	if sqlite != "" && mysql != "" {
		handler.Status.Log(usage)
		handler.Status.LogFatal("parse arguments", errBothSqliteAndMysql)
	}

	sources, err := rdfadmin.FindSources(nArgs...)
	if err != nil {
		handler.Status.Log(usage)
		flag.PrintDefaults()
		handler.Status.LogFatal("find sources", err)
	}

	// prepare the handler
	var registry filter.Registry
	filter.RegisterDefaults(&registry)

	handler.Registry = &registry
	handler.Models = admin.DefaultModels()
	handler.Footer = template.HTML(footerHTML)
	if err := handler.Prepare(); err != nil {
		handler.Status.LogFatal("prepare admin", err)
	}

	// start listening, so that the loading status is shown
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		handler.Status.LogFatal("listen", err)
	}
	handler.Status.Log("listen", "addr", listener.Addr().String())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := http.Serve(listener, handler); err != nil {
			handler.Status.LogError("serve", err)
		}
	}()

	if openBrowser {
		if err := browser.OpenURL("http://" + listener.Addr().String()); err != nil {
			handler.Status.LogError("failed to open browser", err)
		}
	}

	ctx := context.Background()

	// open the store
	err = handler.Status.DoStage(status.StageOpen, func() (err error) {
		driver, dsn := store.DriverSQLite, sqlite
		if mysql != "" {
			driver, dsn = store.DriverMySQL, mysql
		}
		if dsn == "" {
			dsn = ":memory:"
		}

		handler.Store, err = store.Open(driver, dsn)
		if err != nil {
			return err
		}
		return handler.Store.DB.PingContext(ctx)
	})
	if err != nil {
		handler.Status.LogFatal("open store", err)
	}
	defer handler.Store.Close()

	if err := handler.Status.DoStage(status.StageMigrate, func() error {
		return handler.Store.Migrate(ctx)
	}); err != nil {
		handler.Status.LogFatal("migrate store", err)
	}

	// load all the files
	err = handler.Status.DoStage(status.StageLoad, func() error {
		for _, source := range sources {
			handler.Status.Log("loading file", "path", source.Path, "format", source.Format)
			count, err := loader.LoadFile(ctx, handler.Store, source.Path, source.Format, graph, handler.Status)
			if err != nil {
				return err
			}
			handler.Status.Log("loaded file", "path", source.Path, "statements", count)
		}
		return nil
	})
	if err != nil {
		handler.Status.LogFatal("load statements", err)
	}

	handler.Status.DoStage(status.StageHandler, func() error {
		handler.MarkReady()
		return nil
	})

	handler.Status.Log("finished", "took", handler.Status.Diff(), "now", perf.Now())

	<-done
}

var nArgs []string

var addr string = ":3000"

var sqlite string
var mysql string
var graph string

var footerHTML string = "powered by <a href='https://github.com/FAU-CDI/rdfadmin' target='_blank' rel='noopener noreferer'>rdfadmin</a>. "

var openBrowser bool
var debugServer string
var debugProfile string

func init() {
	flag.StringVar(&addr, "addr", addr, "start up a server at the given address")
	flag.StringVar(&sqlite, "sqlite", sqlite, "load statements into the given sqlite database (defaults to an in-memory database)")
	flag.StringVar(&mysql, "mysql", mysql, "load statements into the given mysql database")
	flag.StringVar(&graph, "graph", graph, "named graph for statements of files without graph information")
	flag.StringVar(&footerHTML, "footer", footerHTML, "html to include in footer of every page")
	flag.BoolVar(&openBrowser, "open", openBrowser, "open the admin in the default browser")
	flag.StringVar(&debugServer, "debug-listen", debugServer, "start a profiling server on the given address")
	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a debugging profile to the given path")

	flag.Parse()
	nArgs = flag.Args()
}
