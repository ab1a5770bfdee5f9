package input

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExpandArgsPlain(t *testing.T) {
	got, err := ExpandArgs([]string{"i1", " i2 ", "i1"}, strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"i1", "i2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandArgsStdin(t *testing.T) {
	stdin := strings.NewReader("i2\n\n# skipped\n  i3  \n")
	got, err := ExpandArgs([]string{"i1", "-"}, stdin)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"i1", "i2", "i3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandArgsStdinOnce(t *testing.T) {
	_, err := ExpandArgs([]string{"-", "-"}, strings.NewReader("i1\n"))
	if !errors.Is(err, ErrStdinReused) {
		t.Errorf("got %v, want ErrStdinReused", err)
	}
}

func TestExpandArgsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	if err := os.WriteFile(path, []byte("i4\ni5\ni4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ExpandArgs([]string{"@" + path, "i6"}, strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"i4", "i5", "i6"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandArgsMissingFile(t *testing.T) {
	_, err := ExpandArgs([]string{"@" + filepath.Join(t.TempDir(), "nope")}, strings.NewReader(""))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandArgsBareAt(t *testing.T) {
	got, err := ExpandArgs([]string{"@"}, strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"@"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
