package events

import "github.com/r-owen/toika-loom-client/internal/logging"

type SocketTracer struct{}

type WatcherTracer struct{}

type UploadTracer struct{}

var (
	Socket  = SocketTracer{}
	Watcher = WatcherTracer{}
	Upload  = UploadTracer{}
)

func (SocketTracer) Open(url string) {
	logging.Trace("socket.open", map[string]interface{}{"url": url})
}

func (SocketTracer) Send(msgType string, size int) {
	logging.Trace("socket.send", map[string]interface{}{"type": msgType, "bytes": size})
}

func (SocketTracer) Closed(reason string) {
	logging.Trace("socket.closed", map[string]interface{}{"reason": reason})
}

func (WatcherTracer) Start(dir string) {
	logging.Trace("watcher.start", map[string]interface{}{"dir": dir})
}

func (WatcherTracer) Files(paths []string) {
	logging.Trace("watcher.files", map[string]interface{}{"paths": paths})
}

func (WatcherTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("watcher.error", map[string]interface{}{"error": err.Error()})
}

func (UploadTracer) Start(names []string) {
	logging.Trace("upload.start", map[string]interface{}{"files": names})
}

func (UploadTracer) File(name string, size int) {
	logging.Trace("upload.file", map[string]interface{}{"name": name, "bytes": size})
}

func (UploadTracer) Done(selected string) {
	logging.Trace("upload.done", map[string]interface{}{"selected": selected})
}

func (UploadTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("upload.error", map[string]interface{}{"error": err.Error()})
}
