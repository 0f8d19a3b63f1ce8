package db

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	dir := fstest.MapFS{
		"002_seed_roles.up.sql":  {Data: []byte("INSERT")},
		"001_init.up.sql":        {Data: []byte("CREATE")},
		"001_init.down.sql":      {Data: []byte("DROP")},
		"README.md":              {Data: []byte("notes")},
		"archive/000_old.up.sql": {Data: []byte("old")},
	}

	got, err := PendingMigrations(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_init", "002_seed_roles"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PendingMigrations = %v, want %v", got, want)
	}
}
