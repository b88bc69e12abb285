package recency

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	q, err := New("en", "ru", "de")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if q.Len() != 3 {
		t.Errorf("Expected length 3, got %d", q.Len())
	}

	_, err = New[string]()
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Expected ErrInvalidCapacity, got %v", err)
	}
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := []string{"en", "ru", "de"}
	q, _ := New(seed...)
	seed[0] = "fr"

	if got, _ := q.Get(0); got != "en" {
		t.Errorf("Queue changed through seed slice: got %s", got)
	}
}

func TestGet(t *testing.T) {
	q, _ := New("en", "ru", "de")

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{0, "en", false},
		{2, "de", false},
		{3, "", true},
		{-1, "", true},
	}

	for _, tt := range tests {
		got, err := q.Get(tt.index)
		if tt.wantErr {
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("Get(%d): expected ErrIndexOutOfRange, got %v", tt.index, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Get(%d) = %q, %v; want %q", tt.index, got, err, tt.want)
		}
	}
}

func TestWith(t *testing.T) {
	q, _ := New("en", "ru", "de")

	next, err := q.With(1, "fr")
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}

	if !reflect.DeepEqual(next.Items(), []string{"en", "fr", "de"}) {
		t.Errorf("Unexpected items after With: %v", next.Items())
	}
	if !reflect.DeepEqual(q.Items(), []string{"en", "ru", "de"}) {
		t.Errorf("Original queue was mutated: %v", q.Items())
	}

	if _, err := q.With(5, "fr"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestContainsAndIndexOf(t *testing.T) {
	q, _ := New("en", "ru", "de")

	if !q.Contains("ru") {
		t.Error("Expected queue to contain ru")
	}
	if q.Contains("fr") {
		t.Error("Expected queue not to contain fr")
	}

	if i, ok := q.IndexOf("de"); !ok || i != 2 {
		t.Errorf("IndexOf(de) = %d, %v; want 2, true", i, ok)
	}
	if _, ok := q.IndexOf("fr"); ok {
		t.Error("IndexOf(fr) should not be found")
	}
}

func TestPush_Present(t *testing.T) {
	q, _ := New("en", "ru", "de")

	next, res := q.Push("ru")

	if res.Index != 1 {
		t.Errorf("Expected existing index 1, got %d", res.Index)
	}
	if res.DidEvict {
		t.Errorf("Expected no eviction, got %q", res.Evicted)
	}
	if !next.Equal(q) {
		t.Errorf("Queue order changed: %v", next.Items())
	}
}

func TestPush_New(t *testing.T) {
	q, _ := New("en", "ru", "de")

	next, res := q.Push("fr")

	if res.Index != 0 {
		t.Errorf("Expected index 0, got %d", res.Index)
	}
	if !res.DidEvict || res.Evicted != "de" {
		t.Errorf("Expected de to be evicted, got %q (evicted=%v)", res.Evicted, res.DidEvict)
	}
	if !reflect.DeepEqual(next.Items(), []string{"fr", "en", "ru"}) {
		t.Errorf("Unexpected items after push: %v", next.Items())
	}
	if !reflect.DeepEqual(q.Items(), []string{"en", "ru", "de"}) {
		t.Errorf("Original queue was mutated: %v", q.Items())
	}
}

func TestPush_LengthStable(t *testing.T) {
	q, _ := New(1, 2, 3)

	for _, v := range []int{4, 2, 5, 5, 6, 1, 7} {
		q, _ = q.Push(v)
		if q.Len() != 3 {
			t.Fatalf("Length changed to %d after pushing %d", q.Len(), v)
		}
	}

	if !reflect.DeepEqual(q.Items(), []int{7, 1, 6}) {
		t.Errorf("Unexpected final items: %v", q.Items())
	}
}

func TestPush_SingleSlot(t *testing.T) {
	q, _ := New("en")

	next, res := q.Push("ru")
	if res.Index != 0 || res.Evicted != "en" {
		t.Errorf("Unexpected push result: %+v", res)
	}
	if !reflect.DeepEqual(next.Items(), []string{"ru"}) {
		t.Errorf("Unexpected items: %v", next.Items())
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	q, _ := New("en", "ru", "de")

	items := q.Items()
	items[0] = "modified"

	if got, _ := q.Get(0); got != "en" {
		t.Error("Queue was modified through returned slice")
	}
}
