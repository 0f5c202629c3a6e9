package checksum

import "testing"

func TestSum_Stable(t *testing.T) {
	a := Sum([]byte("board"))
	if a != Sum([]byte("board")) {
		t.Fatal("Sum not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	if a == Sum([]byte("board2")) {
		t.Error("different inputs share a digest")
	}
}

func TestOf(t *testing.T) {
	s1, err := Of(map[string]int{"order": 1})
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	s2, _ := Of(map[string]int{"order": 2})
	if s1 == s2 {
		t.Error("different values share a digest")
	}
	if _, err := Of(make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestETag(t *testing.T) {
	if got := ETag("abc"); got != `"abc"` {
		t.Errorf("ETag = %s", got)
	}
}
