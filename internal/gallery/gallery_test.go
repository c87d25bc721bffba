package gallery

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"lechefer/internal/slides"
)

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name   string
		want   slides.ImageMetadata
		wantOK bool
	}{
		{
			name:   "Chapter 1_Opening_03.jpg",
			want:   slides.ImageMetadata{FileName: "Chapter 1_Opening_03.jpg", Part: "Chapter 1", Group: "Opening", Number: "03"},
			wantOK: true,
		},
		{
			name:   "a_b_c.PNG",
			want:   slides.ImageMetadata{FileName: "a_b_c.PNG", Part: "a", Group: "b", Number: "c"},
			wantOK: true,
		},
		{name: "a_b.jpg"},
		{name: "a_b_c_d.jpg"},
		{name: "a__c.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFileName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseFileName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("ParseFileName(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	for name, want := range map[string]bool{
		"x.jpg": true, "x.JPEG": true, "x.webp": true, "x.avif": true,
		"x.txt": false, "x": false, "favicon.ico": false,
	} {
		if got := IsImage(name); got != want {
			t.Errorf("IsImage(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDirProvider_Images(t *testing.T) {
	fsys := fstest.MapFS{
		"B_Group_02.jpg":       {Data: []byte("b")},
		"A_Group_01.png":       {Data: []byte("a")},
		"notes.txt":            {Data: []byte("skip")},
		"broken.jpg":           {Data: []byte("skip")},
		"nested/C_Group_3.jpg": {Data: []byte("skip")},
	}
	got, err := NewDirProvider(fsys).Images(context.Background())
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	want := []string{"A_Group_01.png", "B_Group_02.jpg"}
	if len(got) != len(want) {
		t.Fatalf("got %d images %+v, want %d", len(got), got, len(want))
	}
	for i, name := range want {
		if got[i].FileName != name {
			t.Errorf("image %d = %q, want %q", i, got[i].FileName, name)
		}
	}
}

func TestDirProvider_EmptyDir(t *testing.T) {
	got, err := NewDirProvider(fstest.MapFS{}).Images(context.Background())
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v, want none", got)
	}
}

func TestDirProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{"A_B_1.jpg": {Data: []byte("a")}}
	if _, err := NewDirProvider(fsys).Images(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestStatic_ReturnsCopy(t *testing.T) {
	s := Static{{FileName: "a.jpg"}}
	got, _ := s.Images(context.Background())
	got[0].FileName = "changed.jpg"
	if s[0].FileName != "a.jpg" {
		t.Error("Static should hand out a copy")
	}
}
