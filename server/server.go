/*
Package server encapsulates the http entry points of the backchannel command
API. The handlers are thin: they read the harness state and write it as is.
*/
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/findy-network/findy-backchannel/agent/harness"
	"github.com/findy-network/findy-backchannel/agent/utils"
	"github.com/golang/glog"
)

// CommandPath is the prefix of all of the backchannel commands.
const CommandPath = "/command"

// NewMux returns the command API handler for the harness.
func NewMux(h *harness.Agent) *http.ServeMux {
	mux := http.NewServeMux()
	setHandler(mux, "status", jsonHandler(h.StatusJSON))
	setHandler(mux, "did", jsonHandler(h.PublicDIDJSON))
	setHandler(mux, "version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(utils.Version))
	})
	return mux
}

// NewHTTPServer builds the command API server listening serverPort. The
// caller starts it after the agent is initialized.
func NewHTTPServer(h *harness.Agent, serverPort uint) *http.Server {
	sp := fmt.Sprintf(":%v", serverPort)
	if glog.V(1) {
		glog.Info(utils.Settings.VersionInfo())
		glog.Infof("HTTP Server on port: %v with handle pattern: \"%s/\"",
			serverPort, CommandPath)
	}
	return &http.Server{
		Addr:              sp,
		Handler:           NewMux(h),
		ReadHeaderTimeout: utils.HTTPReadHeaderTimeout,
	}
}

func setHandler(mux *http.ServeMux, cmd string, handler http.HandlerFunc) {
	pattern := CommandPath + "/" + cmd
	mux.HandleFunc(pattern, onlyGet(logged(handler)))
}

func jsonHandler(read func(ctx context.Context) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := read(r.Context())
		if err != nil {
			glog.Errorln("command", r.URL.Path, "error:", err)
			errorResponse(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}
}

func onlyGet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func logged(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if glog.V(3) {
			glog.Infof("===== %s %s (%s) =====", r.Method, r.URL.Path, utils.UUID())
		}
		next(w, r)
	}
}

func errorResponse(w http.ResponseWriter) {
	glog.V(2).Info("Returning 500")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("500 - Error"))
}
