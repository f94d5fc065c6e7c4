package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"rulewatch/pkg/annotation"
	"rulewatch/pkg/api"
	"rulewatch/pkg/db"
	"rulewatch/pkg/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	token := flag.String("token", "", "bootstrap auth token (optional)")
	storeType := flag.String("store", "memory", "store backend: memory|sqlite|consul (consul requires build tag consul)")
	sqlitePath := flag.String("sqlite-path", "/var/lib/rulewatch/records.db", "sqlite database path (when store=sqlite)")
	consulAddr := flag.String("consul-addr", "127.0.0.1:8500", "consul address (when store=consul)")
	userDB := flag.Bool("user-db", false, "enable MySQL-backed console accounts")
	tlsCert := flag.String("tls-cert", "", "TLS cert path (enables HTTPS if set with --tls-key)")
	tlsKey := flag.String("tls-key", "", "TLS key path (enables HTTPS if set with --tls-cert)")
	clientCA := flag.String("client-ca", "", "require and verify client certs using this CA (optional)")
	flag.Parse()

	var recordStore store.RecordStore
	switch *storeType {
	case "consul":
		recordStore = store.NewConsulStore(*consulAddr)
	case "sqlite":
		st, err := store.NewSQLiteStore(*sqlitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		recordStore = st
	case "memory":
		recordStore = store.NewMemoryStore()
	default:
		log.Fatalf("unsupported store type: %s", *storeType)
	}

	hub := api.NewWSHub()
	svc := annotation.NewService(recordStore)
	authed := api.AuthCheck(*token)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, recordStore, *token)
	api.RegisterRuleRoutes(mux, recordStore, authed, hub)
	api.RegisterAnnotationRoutes(mux, svc, recordStore, authed)
	mux.HandleFunc("/api/v1/ws/events", hub.HandleEvents)
	mux.Handle("/ui/", http.StripPrefix("/ui/", http.FileServer(http.Dir("web"))))

	if *userDB {
		gormDB, err := db.Init()
		if err != nil {
			log.Fatalf("failed to init user db: %v", err)
		}
		(&api.AuthHandler{DB: gormDB}).RegisterRoutes(mux)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("rulewatch listening on %s (store=%s)", *addr, *storeType)
	var err error
	if *tlsCert != "" && *tlsKey != "" {
		if *clientCA != "" {
			cfg, errTLS := api.ServerTLSConfig(*tlsCert, *tlsKey, *clientCA)
			if errTLS != nil {
				log.Fatalf("failed to build TLS config: %v", errTLS)
			}
			srv.TLSConfig = cfg
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServeTLS(*tlsCert, *tlsKey)
		}
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
