package app

import (
	"testing"

	"github.com/legalease/backend/internal/testutil"
)

func TestResolveLoggerKeepsBootstrapOnSameMode(t *testing.T) {
	bootstrap := testutil.NewTestLogger(t)

	got, err := resolveLogger(bootstrap, "development", "development")
	if err != nil {
		t.Fatalf("resolve logger: %v", err)
	}
	if got != bootstrap {
		t.Fatal("same mode must keep the bootstrap logger")
	}

	got, err = resolveLogger(bootstrap, "development", "")
	if err != nil {
		t.Fatalf("resolve logger with empty mode: %v", err)
	}
	if got != bootstrap {
		t.Fatal("empty configured mode must keep the bootstrap logger")
	}
}

func TestResolveLoggerRebuildsOnModeChange(t *testing.T) {
	bootstrap := testutil.NewTestLogger(t)

	got, err := resolveLogger(bootstrap, "development", "production")
	if err != nil {
		t.Fatalf("resolve logger: %v", err)
	}
	if got == nil {
		t.Fatal("rebuilt logger is nil")
	}
	if got == bootstrap {
		t.Fatal("configured mode change must produce a new logger")
	}
}
