package frost

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewLoggerWrites(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, zerolog.InfoLevel)

	log.Info().Str("component", "signer").Msg("ready")
	if !strings.Contains(buf.String(), "ready") {
		t.Fatalf("log output missing message: %q", buf.String())
	}

	buf.Reset()
	log.Debug().Msg("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("debug output not suppressed at info level: %q", buf.String())
	}
}

func TestZerologSinkRecords(t *testing.T) {
	var buf bytes.Buffer
	sink := ZerologSink{Logger: zerolog.New(&buf)}

	sink.Record(AuditEvent{
		Timestamp:  time.Unix(0, 0).UTC(),
		Type:       AuditEventCommit,
		Curve:      CurveBabyJubjub,
		Identifier: 7,
	})

	out := buf.String()
	for _, want := range []string{"commit", "babyjubjub", "\"identifier\":7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("audit line missing %q: %s", want, out)
		}
	}
}
