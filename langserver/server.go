// Package langserver implements a Language Server Protocol server for
// instruction description files. Editing a description file reports the
// parser's diagnostics back to the client on every change.
//
// The server speaks JSON-RPC 2.0 over stdio, TCP or a websocket.
package langserver

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
)

type handler struct {
	docs *documentStore
}

func newHandler() *handler {
	return &handler{docs: newDocumentStore()}
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "initialize":
		h.initialize(ctx, conn, req)
	case "textDocument/didOpen":
		h.didOpen(ctx, conn, req)
	case "textDocument/didChange":
		h.didChange(ctx, conn, req)
	case "textDocument/didClose":
		h.didClose(ctx, conn, req)
	case "textDocument/diagnostic":
		h.documentDiagnostic(ctx, conn, req)
	case "shutdown":
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		conn.Close()
	}
}

func (h *handler) initialize(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params InitializeParams
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			replyInvalidParams(ctx, conn, req)
			return
		}
	}

	conn.Reply(ctx, req.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   1,
			DiagnosticProvider: true,
		},
		ServerInfo: map[string]string{"name": "sassas-lsp"},
	})
}

func replyInvalidParams(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		return
	}
	conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeInvalidParams,
		Message: "invalid parameters",
	})
}

// stdrwc adapts the process's stdin/stdout into the io.ReadWriteCloser that
// jsonrpc2 streams are built on.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// ListenAndServe serves a single client over stdin/stdout and blocks until
// the client disconnects.
func ListenAndServe() {
	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{})
	<-jsonrpc2.NewConn(context.Background(), stream, newHandler()).DisconnectNotify()
}

// ListenAndServeTCP accepts language clients on the given TCP address, one
// connection per client.
func ListenAndServeTCP(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer lis.Close()

	log.Println("sassas language server: listening for TCP connections on", addr)

	for {
		conn, err := lis.Accept()
		if err != nil {
			return err
		}

		stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{})
		rpcConn := jsonrpc2.NewConn(context.Background(), stream, newHandler())
		go func() {
			<-rpcConn.DisconnectNotify()
			log.Println("sassas language server: connection closed")
		}()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsObjectStream adapts a websocket connection to the jsonrpc2.ObjectStream
// interface, one JSON-RPC message per websocket frame.
type wsObjectStream struct {
	conn *websocket.Conn
}

func (s wsObjectStream) ReadObject(v interface{}) error {
	return s.conn.ReadJSON(v)
}

func (s wsObjectStream) WriteObject(v interface{}) error {
	return s.conn.WriteJSON(v)
}

func (s wsObjectStream) Close() error {
	return s.conn.Close()
}

// ListenAndServeWebSocket serves language clients over websocket connections
// at the given HTTP address.
func ListenAndServeWebSocket(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("sassas language server: websocket upgrade failed:", err)
			return
		}

		rpcConn := jsonrpc2.NewConn(context.Background(), wsObjectStream{conn: conn}, newHandler())
		<-rpcConn.DisconnectNotify()
	})

	log.Println("sassas language server: listening for websocket connections on", addr)
	return http.ListenAndServe(addr, mux)
}
