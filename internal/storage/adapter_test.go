package storage

import (
	"context"
	"errors"
	"testing"

	"hotel_booking/internal/storage/memory"
)

type brokenKV struct{ err error }

func (b brokenKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, b.err }
func (b brokenKV) Set(context.Context, string, []byte) error         { return b.err }
func (b brokenKV) Del(context.Context, string) error                 { return b.err }

func TestAdapter_ReadWriteRemove(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(memory.New(), "memory")

	var got []string
	ok, err := a.Read(ctx, "k", &got)
	if err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := a.Write(ctx, "k", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	ok, err = a.Read(ctx, "k", &got)
	if err != nil || !ok || len(got) != 2 || got[1] != "b" {
		t.Fatalf("got %v ok=%v err=%v", got, ok, err)
	}
	if err := a.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := a.Read(ctx, "k", &got); ok {
		t.Fatal("expected miss after Remove")
	}
}

func TestAdapter_MalformedJSONIsNoData(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, KeyReservations, []byte("{not json"))
	a := NewAdapter(kv, "memory")

	var dst []int
	ok, err := a.Read(ctx, KeyReservations, &dst)
	if err != nil {
		t.Fatalf("malformed blob must not be an error, got %v", err)
	}
	if ok {
		t.Fatal("malformed blob must read as absent")
	}
}

func TestAdapter_BackendErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(brokenKV{err: boom}, "broken")
	var v any
	if _, err := a.Read(context.Background(), "k", &v); !errors.Is(err, boom) {
		t.Fatalf("read err = %v", err)
	}
	if err := a.Write(context.Background(), "k", 1); !errors.Is(err, boom) {
		t.Fatalf("write err = %v", err)
	}
	if err := a.Remove(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("remove err = %v", err)
	}
}
