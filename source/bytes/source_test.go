package bytes_test

import (
	"context"
	"testing"

	"github.com/yacchi/dedokoro/dktest"
	"github.com/yacchi/dedokoro/source"
	"github.com/yacchi/dedokoro/source/bytes"
)

func TestSource(t *testing.T) {
	factory := func(t *testing.T, data []byte) source.Source {
		return bytes.New(data, bytes.WithName("test.yaml"))
	}
	dktest.NewSourceTester(t, factory).TestAll()
}

func TestNew_Copies(t *testing.T) {
	data := []byte("a: 1\n")
	s := bytes.New(data)
	data[0] = 'x'

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != "a: 1\n" {
		t.Errorf("Load() = %q, input mutation leaked in", got)
	}

	got[0] = 'y'
	again, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(again) != "a: 1\n" {
		t.Errorf("Load() = %q, output mutation leaked in", again)
	}
}

func TestFromString(t *testing.T) {
	s := bytes.FromString("key: value\n")
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != "key: value\n" {
		t.Errorf("Load() = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := bytes.New(nil).Describe(); got != bytes.DefaultName {
		t.Errorf("Describe() = %q, want %q", got, bytes.DefaultName)
	}
	if got := bytes.New(nil, bytes.WithName("app.yaml")).Describe(); got != "app.yaml" {
		t.Errorf("Describe() = %q, want app.yaml", got)
	}
}
