package audio

import (
	"reflect"
	"testing"
)

func TestAyahURLs(t *testing.T) {
	tests := []struct {
		name          string
		bitrates      []int
		edition       string
		ayah          int
		wantPrimary   string
		wantSecondary []string
	}{
		{
			name:        "single bitrate",
			bitrates:    []int{128},
			edition:     "ar.alafasy",
			ayah:        262,
			wantPrimary: "https://quranhub.b-cdn.net/quran/audio/versebyverse/128/ar.alafasy/262.mp3",
			wantSecondary: []string{},
		},
		{
			name:        "max not first, order of rest preserved",
			bitrates:    []int{64, 192, 128},
			edition:     "ar.abdullahbasfar.hafs",
			ayah:        1,
			wantPrimary: "https://quranhub.b-cdn.net/quran/audio/versebyverse/192/ar.abdullahbasfar.hafs/1.mp3",
			wantSecondary: []string{
				"https://quranhub.b-cdn.net/quran/audio/versebyverse/64/ar.abdullahbasfar.hafs/1.mp3",
				"https://quranhub.b-cdn.net/quran/audio/versebyverse/128/ar.abdullahbasfar.hafs/1.mp3",
			},
		},
		{
			name:          "no bitrates",
			bitrates:      nil,
			edition:       "ar.alafasy",
			ayah:          1,
			wantPrimary:   "",
			wantSecondary: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, secondary := AyahURLs(tt.bitrates, tt.edition, tt.ayah)
			if primary != tt.wantPrimary {
				t.Errorf("primary = %q; want %q", primary, tt.wantPrimary)
			}
			if !reflect.DeepEqual(secondary, tt.wantSecondary) {
				t.Errorf("secondary = %v; want %v", secondary, tt.wantSecondary)
			}
		})
	}
}

func TestSurahURLs(t *testing.T) {
	primary, secondary := SurahURLs([]int{128, 64}, "ar.husary", 36)
	want := "https://quranhub.b-cdn.net/quran/audio/surah/128/ar.husary/36.mp3"
	if primary != want {
		t.Errorf("primary = %q; want %q", primary, want)
	}
	if len(secondary) != 1 || secondary[0] != "https://quranhub.b-cdn.net/quran/audio/surah/64/ar.husary/36.mp3" {
		t.Errorf("secondary = %v; want one 64kbps URL", secondary)
	}
}
