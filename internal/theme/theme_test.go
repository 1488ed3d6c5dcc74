package theme

import (
	"testing"

	"github.com/r-owen/toika-loom-client/internal/protocol"
)

func TestForSeverity(t *testing.T) {
	s := Default()
	if s.ForSeverity(protocol.SeverityError) != s.SeverityError {
		t.Fatalf("expected error style")
	}
	if s.ForSeverity(protocol.SeverityWarning) != s.SeverityWarning {
		t.Fatalf("expected warning style")
	}
	if s.ForSeverity(protocol.Severity(9)) != s.SeverityInfo {
		t.Fatalf("expected unknown severity to fall back to info")
	}
}

func TestForDirection(t *testing.T) {
	s := Default()
	if arrow, style := s.ForDirection(true); arrow != "↓" || style != s.Forward {
		t.Fatalf("expected forward arrow, got %q", arrow)
	}
	if arrow, style := s.ForDirection(false); arrow != "↑" || style != s.Reverse {
		t.Fatalf("expected reverse arrow, got %q", arrow)
	}
}

func TestForStatus(t *testing.T) {
	s := Default()
	if s.ForStatus(true) != s.StatusError || s.ForStatus(false) != s.Status {
		t.Fatalf("unexpected status styles")
	}
}
