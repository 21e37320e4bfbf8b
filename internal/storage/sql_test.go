package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSQLBackend_RoundTrip(t *testing.T) {
	sb, err := OpenSQL(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared", time.Second)
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	defer sb.Close(context.Background())
	ctx := context.Background()

	if _, err := sb.Load(ctx); !errors.Is(err, ErrNoData) {
		t.Fatalf("empty table: err = %v; want ErrNoData", err)
	}
	for _, payload := range []string{`{"v":1}`, `{"v":2}`} {
		if err := sb.Save(ctx, []byte(payload)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := sb.Load(ctx)
		if err != nil || string(got) != payload {
			t.Fatalf("Load = %q, %v; want %q", got, err, payload)
		}
	}
}

func TestOpenSQL_UnsupportedURL(t *testing.T) {
	if _, err := OpenSQL(context.Background(), "mysql://localhost/ledger", time.Second); err == nil {
		t.Fatalf("expected error for unsupported url")
	}
}
