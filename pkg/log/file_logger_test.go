package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Nilao18/matter-ophelia4/pkg/model"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp:  time.Now(),
		SessionID:  "session-123",
		Layer:      LayerStore,
		Category:   CategoryAccess,
		EndpointID: 1,
		Access: &AccessEvent{
			Operation:   OperationRead,
			ClusterID:   0x0405,
			AttributeID: 0x0000,
			Status:      model.StatusSuccess,
			Data:        []byte{0xD7, 0x11},
		},
	}

	logger.Log(event)
	if logger.Written() != 1 {
		t.Errorf("Written() = %d, want 1", logger.Written())
	}
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("trace file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Access == nil {
		t.Fatal("Access is nil")
	}
	if decoded.Access.ClusterID != 0x0405 || !bytes.Equal(decoded.Access.Data, []byte{0xD7, 0x11}) {
		t.Errorf("Access: got %+v", decoded.Access)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	for _, session := range []string{"s-1", "s-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: session, Category: CategoryLifecycle})
		logger.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].SessionID != "s-1" || events[1].SessionID != "s-2" {
		t.Errorf("unexpected order: %q, %q", events[0].SessionID, events[1].SessionID)
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				logger.Log(Event{
					Timestamp:  time.Now(),
					EndpointID: model.EndpointID(id),
					Category:   CategoryReport,
					Report:     &ReportEvent{ClusterID: 0x0405},
				})
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != numGoroutines*eventsPerGoroutine {
		t.Errorf("event count: got %d, want %d", len(events), numGoroutines*eventsPerGoroutine)
	}
}

func TestFileLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.alog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryAccess})

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is ignored
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryAccess})
	if logger.Written() != 1 {
		t.Errorf("Written() = %d, want 1", logger.Written())
	}
}

type nopWriteCloser struct {
	bytes.Buffer
}

func (*nopWriteCloser) Close() error { return nil }

func TestStreamLogger(t *testing.T) {
	var w nopWriteCloser
	logger := NewStreamLogger(&w)

	logger.Log(Event{Category: CategoryError, Error: &ErrorEventData{Layer: LayerHost, Message: "boom"}})

	decoded, err := DecodeEvent(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Message != "boom" {
		t.Errorf("Error: got %+v", decoded.Error)
	}
}

func TestEncodeValueRoundTrip(t *testing.T) {
	data, err := EncodeValue([]uint32{0x001D, 0x0003, 0x0405})
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}

	var got []uint32
	if err := DecodeValue(data, &got); err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	if len(got) != 3 || got[2] != 0x0405 {
		t.Errorf("got %v", got)
	}
}
